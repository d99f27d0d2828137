package storage

import (
	"bytes"

	"github.com/joshuapare/hexkit/internal/buf"
)

// store is the backing representation of a session. Session owns the
// bookkeeping (bounds, edit rights, dirty flag); a store only moves bytes.
type store interface {
	// size reports the current content length.
	size() (int64, error)
	// read returns up to n bytes starting at off.
	read(off, n int64) ([]byte, error)
	// write places p at off, extending the content if needed.
	write(off int64, p []byte) error
	// index returns the first offset of needle in [start, stop), or -1.
	index(needle []byte, start, stop int64) (int64, error)
	// snapshot returns a copy of the whole content.
	snapshot() ([]byte, error)
	// checksum returns the xxhash64 digest of the content.
	checksum() (uint64, error)
	close() error
}

// indexIn searches data[start:stop] the way a bounded substring search
// does: the whole match must fit before stop.
func indexIn(data, needle []byte, start, stop int64) int64 {
	end, ok := buf.Clamp(start, stop-start, int64(len(data)))
	if !ok {
		return -1
	}
	i := bytes.Index(data[start:end], needle)
	if i < 0 {
		return -1
	}
	return start + int64(i)
}
