package storage

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/hexkit/internal/buf"
)

// bufferedStore holds the entire file in memory.
type bufferedStore struct {
	buf []byte
}

func (b *bufferedStore) size() (int64, error) { return int64(len(b.buf)), nil }

func (b *bufferedStore) read(off, n int64) ([]byte, error) {
	size := int64(len(b.buf))
	data, ok := buf.Slice(b.buf, off, min(n, size-off))
	if !ok {
		return nil, fmt.Errorf("offset %d outside [0, %d]", off, size)
	}
	return bytes.Clone(data), nil
}

// write places p over buf[off:], growing buf when p runs past the end.
// Growth is amortized so chunked fills stay linear.
func (b *bufferedStore) write(off int64, p []byte) error {
	end := int(off) + len(p)
	if end > len(b.buf) {
		b.buf = slices.Grow(b.buf, end-len(b.buf))[:end]
	}
	copy(b.buf[off:end], p)
	return nil
}

func (b *bufferedStore) index(needle []byte, start, stop int64) (int64, error) {
	return indexIn(b.buf, needle, start, stop), nil
}

func (b *bufferedStore) snapshot() ([]byte, error) {
	return bytes.Clone(b.buf), nil
}

func (b *bufferedStore) checksum() (uint64, error) {
	return xxhash.Sum64(b.buf), nil
}

func (b *bufferedStore) close() error {
	b.buf = nil
	return nil
}
