package memstat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMeminfo = `MemTotal:       16000000 kB
MemFree:         2000000 kB
MemAvailable:    9000000 kB
Buffers:          500000 kB
Cached:          3500000 kB
SwapCached:            0 kB
`

func TestParseMeminfo(t *testing.T) {
	m, err := ParseMeminfo(strings.NewReader(sampleMeminfo))
	require.NoError(t, err)
	assert.Equal(t, uint64(16000000*1024), m.Total)
	assert.Equal(t, uint64(6000000*1024), m.Free)
	assert.Equal(t, uint64(10000000*1024), m.Used)
}

func TestParseMeminfoMissingTotal(t *testing.T) {
	_, err := ParseMeminfo(strings.NewReader("MemFree: 10 kB\n"))
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestParseMeminfoBadNumber(t *testing.T) {
	_, err := ParseMeminfo(strings.NewReader("MemTotal: lots kB\n"))
	require.Error(t, err)
}

func TestUnused(t *testing.T) {
	m, err := Unused()
	if err != nil {
		require.ErrorIs(t, err, ErrUnsupportedPlatform)
		return
	}
	assert.NotZero(t, m.Total)
	assert.LessOrEqual(t, m.Free, m.Total)
	assert.Equal(t, m.Total-m.Free, m.Used)
}
