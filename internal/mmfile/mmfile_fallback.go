//go:build !unix && !windows

package mmfile

// Map reads the entire file when mmap is not available.
func Map(f File) ([]byte, func() error, error) {
	size, err := sizeOf(f)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return []byte{}, noop, nil
	}
	return readAll(f, size)
}
