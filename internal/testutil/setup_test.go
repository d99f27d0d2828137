package testutil

import (
	"path/filepath"
	"testing"
)

func TestWriteTempAndRead(t *testing.T) {
	path := WriteTemp(t, []byte("fixture"))
	if filepath.Base(path) != DefaultName {
		t.Fatalf("name = %q, want %q", filepath.Base(path), DefaultName)
	}
	if got := ReadString(t, path); got != "fixture" {
		t.Fatalf("ReadString = %q", got)
	}
}

func TestCopyFileAndDirNames(t *testing.T) {
	path := WriteTempNamed(t, "b.bin", []byte{1, 2, 3})
	CopyFile(t, path, filepath.Join(filepath.Dir(path), "a.bin"))

	names := DirNames(t, path)
	if len(names) != 2 || names[0] != "a.bin" || names[1] != "b.bin" {
		t.Fatalf("DirNames = %v", names)
	}
	if got := ReadString(t, filepath.Join(filepath.Dir(path), "a.bin")); got != "\x01\x02\x03" {
		t.Fatalf("copy = %q", got)
	}
}
