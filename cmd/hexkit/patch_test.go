package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/internal/testutil"
)

func TestPatchCommand(t *testing.T) {
	for _, mode := range []string{"mapped", "buffered"} {
		t.Run(mode, func(t *testing.T) {
			resetFlags()
			t.Cleanup(resetFlags)
			path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))

			modeName = mode
			output, err := captureOutput(t, func() error {
				return runPatch([]string{path, "2", "xy"})
			})
			require.NoError(t, err)
			assert.Contains(t, output, "Patched")

			assert.Equal(t, "ABxyEFGHIJ", testutil.ReadString(t, path))

			assert.Equal(t, []string{testutil.DefaultName}, testutil.DirNames(t, path), "scratch copy removed")
		})
	}
}

func TestPatchCommandFill(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))

	patchEnd = "0x8"
	patchHex = true
	_, err := captureOutput(t, func() error {
		return runPatch([]string{path, "0x3", "2d2b"})
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC-+-+-IJ", testutil.ReadString(t, path))
}

func TestPatchCommandOutput(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))
	out := filepath.Join(filepath.Dir(path), "patched.bin")

	patchOutput = out
	output, err := captureOutput(t, func() error {
		return runPatch([]string{path, "0", "zz"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Patched copy written to "+out)

	assert.Equal(t, "ABCDEFGHIJ", testutil.ReadString(t, path))

	assert.Equal(t, "zzCDEFGHIJ", testutil.ReadString(t, out))
}

func TestPatchCommandInPlace(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))

	patchInPlace = true
	_, err := captureOutput(t, func() error {
		return runPatch([]string{path, "9", "!"})
	})
	require.NoError(t, err)

	assert.Equal(t, "ABCDEFGHI!", testutil.ReadString(t, path))
}

func TestPatchCommandDryRun(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))
	out := filepath.Join(filepath.Dir(path), "never.bin")

	patchDryRun = true
	patchOutput = out
	output, err := captureOutput(t, func() error {
		return runPatch([]string{path, "0", "zz"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Found at offset 0x00000000")
	assert.Contains(t, output, "zzCDEFGHIJ")
	assert.Contains(t, output, "Dry run, nothing saved")

	assert.Equal(t, "ABCDEFGHIJ", testutil.ReadString(t, path))
	assert.NoFileExists(t, out)

	assert.Equal(t, []string{testutil.DefaultName}, testutil.DirNames(t, path))
}

func TestPatchCommandErrors(t *testing.T) {
	t.Cleanup(resetFlags)
	path := testutil.WriteTemp(t, []byte("ABCDEFGHIJ"))

	tests := []struct {
		name  string
		setup func()
		args  []string
	}{
		{name: "output and in-place", setup: func() { patchOutput = "x"; patchInPlace = true }, args: []string{path, "0", "a"}},
		{name: "bad offset", setup: func() {}, args: []string{path, "-3", "a"}},
		{name: "offset past end", setup: func() {}, args: []string{path, "11", "a"}},
		{name: "bad hex", setup: func() { patchHex = true }, args: []string{path, "0", "xyz"}},
		{name: "empty fill", setup: func() { patchHex = true; patchEnd = "4" }, args: []string{path, "0", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			tt.setup()
			_, err := captureOutput(t, func() error {
				return runPatch(tt.args)
			})
			require.Error(t, err)

			assert.Equal(t, "ABCDEFGHIJ", testutil.ReadString(t, path))
		})
	}
}
