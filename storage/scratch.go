package storage

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

const (
	scratchExt      = ".phe"
	scratchSuffixN  = 4
	scratchAttempts = 16
)

// scratchPath returns an unused sibling of path named
// "<name>_<4 lowercase letters>_.phe".
func scratchPath(path string) string {
	dir, base := filepath.Split(path)
	var candidate string
	for range scratchAttempts {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%s_%s", base, randomLower(scratchSuffixN), scratchExt))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			break
		}
	}
	return candidate
}

func randomLower(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rand.IntN(26))
	}
	return string(b)
}

// copyFile replaces dst with the contents of src and syncs it to disk.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := syncFile(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// writeFile replaces path with data and syncs it to disk.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := syncFile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// fileChecksum returns the xxhash64 digest of the file at path.
func fileChecksum(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
