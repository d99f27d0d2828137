// Package textenc resolves encoding names to golang.org/x/text encodings
// and converts between strings and raw bytes with them.
package textenc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is the encoding used when none is configured.
const Default = "utf-8"

// ErrUnknownEncoding is returned by Lookup for names it cannot resolve.
var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

// Names the IANA registry doesn't carry but users commonly type.
var aliases = map[string]encoding.Encoding{
	"utf8":   unicode.UTF8,
	"cp1252": charmap.Windows1252,
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"ansi":   charmap.Windows1252,
	"latin1": charmap.ISO8859_1,
}

// Encoding is a resolved text encoding.
type Encoding struct {
	name string
	enc  encoding.Encoding
	cm   *charmap.Charmap // set for single-byte charsets
}

// Lookup resolves name (case-insensitive). An empty name yields Default.
func Lookup(name string) (*Encoding, error) {
	if strings.TrimSpace(name) == "" {
		name = Default
	}
	key := strings.ToLower(strings.TrimSpace(name))

	enc, ok := aliases[strings.ReplaceAll(key, "-", "")]
	if !ok {
		var err error
		enc, err = ianaindex.IANA.Encoding(key)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil || canonical == "" {
		canonical = strings.ToUpper(key)
	}
	e := &Encoding{name: canonical, enc: enc}
	if cm, ok := enc.(*charmap.Charmap); ok {
		e.cm = cm
	}
	return e, nil
}

// MustLookup is like Lookup but panics on failure. Intended for constants.
func MustLookup(name string) *Encoding {
	e, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the canonical IANA name, e.g. "UTF-8".
func (e *Encoding) Name() string { return e.name }

// SingleByte reports whether every byte maps to exactly one character.
func (e *Encoding) SingleByte() bool { return e.cm != nil }

// Encode converts s to bytes in this encoding.
func (e *Encoding) Encode(s string) ([]byte, error) {
	b, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("textenc: encode as %s: %w", e.name, err)
	}
	return b, nil
}

// Decode converts b from this encoding to a Go string.
func (e *Encoding) Decode(b []byte) (string, error) {
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textenc: decode %s: %w", e.name, err)
	}
	return string(out), nil
}

// DecodeByte maps a single byte to a rune. Single-byte charsets use their
// table; multi-byte encodings fall back to the Latin-1 code point so the
// result is always defined.
func (e *Encoding) DecodeByte(b byte) rune {
	if e.cm != nil {
		return e.cm.DecodeByte(b)
	}
	return rune(b)
}
