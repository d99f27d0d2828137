//go:build windows

package mmfile

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Map maps f read-only and returns its contents plus a release func.
func Map(f File) ([]byte, func() error, error) {
	size, err := sizeOf(f)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return []byte{}, noop, nil
	}
	osf, ok := f.(*os.File)
	if !ok {
		return readAll(f, size)
	}
	m, err := mmap.Map(osf, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: mmap %s: %w", f.Name(), err)
	}
	return m, m.Unmap, nil
}
