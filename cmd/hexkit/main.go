// Command hexkit views, searches and patches binary files.
package main

func main() {
	execute()
}
