// Package mmfile provides platform-specific helpers for memory-mapping
// open files for the duration of a single operation.
package mmfile

import (
	"io"
	"os"
)

// File is the subset of *os.File needed to map it.
type File interface {
	io.ReaderAt
	Fd() uintptr
	Name() string
	Stat() (os.FileInfo, error)
}

func noop() error { return nil }

func sizeOf(f File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// readAll is the copy-based stand-in used where mapping is unavailable.
func readAll(f File, size int64) ([]byte, func() error, error) {
	data := make([]byte, size)
	n, err := f.ReadAt(data, 0)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	return data[:n], noop, nil
}

// With maps f, runs fn over the mapping and releases it before returning,
// even when fn panics or returns an error.
func With(f File, fn func(data []byte) error) (err error) {
	data, release, err := Map(f)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(data)
}
