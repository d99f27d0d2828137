package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/internal/testutil"
)

var bothModes = []Mode{ModeMapped, ModeBuffered}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteTemp(t, []byte(content))
}

// openTest opens path and closes the session at test end.
func openTest(t *testing.T, path string, opts Options) *Session {
	t.Helper()
	s, err := Open(path, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// scratchFiles lists scratch copies in the directory of path.
func scratchFiles(t *testing.T, path string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*_"+scratchExt))
	require.NoError(t, err)
	return matches
}
