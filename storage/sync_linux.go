//go:build linux

package storage

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data to disk. fdatasync is enough since only
// the contents matter for a commit.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
