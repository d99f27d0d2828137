// Package testutil holds file fixtures shared by package tests.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// DefaultName is the file name WriteTemp uses.
const DefaultName = "input.bin"

// WriteTemp writes content to DefaultName in a fresh temp directory and
// returns its path. The directory is removed when the test ends.
//
// Example:
//
//	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))
//	s, err := storage.Open(path, storage.Options{})
func WriteTemp(t *testing.T, content []byte) string {
	t.Helper()
	return WriteTempNamed(t, DefaultName, content)
}

// WriteTempNamed is like WriteTemp with an explicit file name.
func WriteTempNamed(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

// ReadString returns the contents of path.
// Calls t.Fatal if the file cannot be read.
func ReadString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// DirNames lists the sorted file names in the directory holding path.
// Tests use it to check that no stray scratch copies were left behind.
func DirNames(t *testing.T, path string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to list %s: %v", filepath.Dir(path), err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

// CopyFile copies src to dst.
// Calls t.Fatal if the copy fails.
func CopyFile(t *testing.T, src, dst string) {
	t.Helper()

	srcFile, err := os.Open(src)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", src, err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", dst, err)
	}
	defer dstFile.Close()

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		t.Fatalf("Failed to copy %s: %v", src, copyErr)
	}
}
