package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/storage"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "42", want: 42},
		{in: "0x2A", want: 42},
		{in: "0X2a", want: 42},
		{in: "0b101", want: 5},
		{in: "1_000", want: 1000},
		{in: "-1", wantErr: true},
		{in: "zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOffset(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	auto, _, err := parseMode("auto")
	require.NoError(t, err)
	assert.True(t, auto)

	auto, mode, err := parseMode("Buffered")
	require.NoError(t, err)
	assert.False(t, auto)
	assert.Equal(t, storage.ModeBuffered, mode)

	_, mode, err = parseMode("mapped")
	require.NoError(t, err)
	assert.Equal(t, storage.ModeMapped, mode)

	_, _, err = parseMode("turbo")
	require.Error(t, err)
}

func TestSessionOptionsRejectsBadWidth(t *testing.T) {
	resetFlags()
	lineWidth = 0
	_, err := sessionOptions()
	require.Error(t, err)
}

func TestHeaderStyler(t *testing.T) {
	resetFlags()

	colorMode = "never"
	style, err := headerStyler()
	require.NoError(t, err)
	assert.Nil(t, style)

	colorMode = "always"
	style, err = headerStyler()
	require.NoError(t, err)
	require.NotNil(t, style)
	assert.Contains(t, style("Offset(h)"), "Offset(h)")

	colorMode = "rainbow"
	_, err = headerStyler()
	require.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	b, err := decodeHex("de ad BE ef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, b)

	b, err = decodeHex("0x7f454c46")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7F, 'E', 'L', 'F'}, b)

	_, err = decodeHex("abc")
	require.Error(t, err)
}
