package storage

import (
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/hexkit/internal/mmfile"
)

// mappedStore works through an open file handle. Searches map the file
// read-only for the duration of one call.
type mappedStore struct {
	f *os.File
}

// size seeks to the end and reports the position, so growth through
// this handle is reflected.
func (m *mappedStore) size() (int64, error) {
	pos, err := m.f.Seek(0, io.SeekEnd)
	if err != nil {
		info, serr := m.f.Stat()
		if serr != nil {
			return 0, err
		}
		return info.Size(), nil
	}
	return pos, nil
}

func (m *mappedStore) read(off, n int64) ([]byte, error) {
	if _, err := m.f.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	k, err := io.ReadFull(m.f, out)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return out[:k], err
}

func (m *mappedStore) write(off int64, p []byte) error {
	if _, err := m.f.Seek(off, io.SeekStart); err != nil {
		return err
	}
	_, err := m.f.Write(p)
	return err
}

func (m *mappedStore) index(needle []byte, start, stop int64) (int64, error) {
	pos := int64(-1)
	err := mmfile.With(m.f, func(data []byte) error {
		pos = indexIn(data, needle, start, stop)
		return nil
	})
	return pos, err
}

func (m *mappedStore) snapshot() ([]byte, error) {
	if _, err := m.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(m.f)
}

func (m *mappedStore) checksum() (uint64, error) {
	var sum uint64
	err := mmfile.With(m.f, func(data []byte) error {
		sum = xxhash.Sum64(data)
		return nil
	})
	return sum, err
}

func (m *mappedStore) close() error {
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
