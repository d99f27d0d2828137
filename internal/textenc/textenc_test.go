package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		singleByte bool
	}{
		{name: "empty defaults to utf-8", input: "", wantName: "UTF-8"},
		{name: "python style utf8", input: "utf8", wantName: "UTF-8"},
		{name: "iana utf-8", input: "UTF-8", wantName: "UTF-8"},
		{name: "latin1 alias", input: "latin1", wantName: "ISO-8859-1", singleByte: true},
		{name: "cp1252 alias", input: "cp1252", wantName: "windows-1252", singleByte: true},
		{name: "iana windows-1252", input: "Windows-1252", wantName: "windows-1252", singleByte: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, e.Name())
			assert.Equal(t, tt.singleByte, e.SingleByte())
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("klingon-8")
	require.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestEncodeDecode(t *testing.T) {
	e := MustLookup("latin1")
	b, err := e.Encode("héllo")
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 0xE9, 'l', 'l', 'o'}, b)

	s, err := e.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestEncodeUTF8(t *testing.T) {
	b, err := MustLookup("utf8").Encode("é")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC3, 0xA9}, b)
}

func TestDecodeByte(t *testing.T) {
	assert.Equal(t, 'A', MustLookup("utf-8").DecodeByte('A'))
	assert.Equal(t, rune(0xE9), MustLookup("utf-8").DecodeByte(0xE9))
	assert.Equal(t, '€', MustLookup("cp1252").DecodeByte(0x80))
}
