package mmfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, content []byte) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestMapReadOnly(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	f := openTemp(t, want)

	data, release, err := Map(f)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, release())
	}()
	require.Equal(t, want, []byte(data))
}

func TestMapZeroLength(t *testing.T) {
	f := openTemp(t, nil)
	data, release, err := Map(f)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, release)
	require.NoError(t, release())
}

func TestMapSeesWritesThroughHandle(t *testing.T) {
	f := openTemp(t, []byte("hello world"))
	_, err := f.WriteAt([]byte("HELLO"), 0)
	require.NoError(t, err)

	err = With(f, func(data []byte) error {
		if !bytes.HasPrefix(data, []byte("HELLO world")) {
			return errors.New("pending write not visible")
		}
		return nil
	})
	require.NoError(t, err)
}

func TestWithPropagatesError(t *testing.T) {
	f := openTemp(t, []byte("abc"))
	sentinel := errors.New("boom")
	err := With(f, func([]byte) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}
