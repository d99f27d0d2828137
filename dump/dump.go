// Package dump renders byte ranges as fixed-width hex and character tables.
//
// Rendering "ABCDEFGHI\n" stored at offset 3 with 8 bytes per row
// (every header, the first included, follows a blank line):
//
//	Offset(h) |  00 01 02 03 04 05 06 07  |   UTF-8
//	-------------------------------------------------
//	00000000  |           41 42 43 44 45  |     ABCDE
//	00000008  |  46 47 48 49 0A           |  FGHI.
//
// The renderer only reads from its Source.
package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/hexkit/internal/textenc"
	"github.com/joshuapare/hexkit/storage"
)

const (
	// DefaultRowsPerHeader is how often the header repeats.
	DefaultRowsPerHeader = 16
	// MaxLineWidth keeps column labels to two hex digits.
	MaxLineWidth = 256

	headerPrefix = "Offset(h) | "
	separator    = "  |  "
	blankCell    = "   "
)

// ErrInvalidLineWidth is returned for line widths outside 1..MaxLineWidth.
var ErrInvalidLineWidth = errors.New("dump: invalid line width")

// Source is what the renderer reads from. *storage.Session implements it.
type Source interface {
	Len() int64
	Read(r storage.Range) ([]byte, error)
}

// Options controls Render.
type Options struct {
	// Begin is the first offset rendered.
	Begin int64

	// End is the exclusive end offset. Values <= 0 mean the end of the data.
	End int64

	// RowsPerHeader repeats the header after this many rows. Default: 16.
	RowsPerHeader int

	// LineWidth is the number of bytes per row. Default: the source's
	// LineWidth() if it has one, else 16.
	LineWidth int

	// Encoding decodes the character column. Default: the source's
	// Encoding() if it has one, else UTF-8.
	Encoding *textenc.Encoding

	// Charset is the label in the header. Default: the encoding name.
	Charset string

	// StyleHeader, if set, decorates header and rule lines (e.g. color).
	StyleHeader func(string) string
}

func (o Options) resolve(src Source) (Options, error) {
	if o.LineWidth <= 0 {
		o.LineWidth = storage.DefaultLineWidth
		if lw, ok := src.(interface{ LineWidth() int }); ok && lw.LineWidth() > 0 {
			o.LineWidth = lw.LineWidth()
		}
	}
	if o.LineWidth > MaxLineWidth {
		return o, fmt.Errorf("%w: %d", ErrInvalidLineWidth, o.LineWidth)
	}
	if o.RowsPerHeader <= 0 {
		o.RowsPerHeader = DefaultRowsPerHeader
	}
	if o.Encoding == nil {
		if e, ok := src.(interface{ Encoding() *textenc.Encoding }); ok && e.Encoding() != nil {
			o.Encoding = e.Encoding()
		} else {
			o.Encoding = textenc.MustLookup(textenc.Default)
		}
	}
	if o.Charset == "" {
		o.Charset = o.Encoding.Name()
	}
	if o.StyleHeader == nil {
		o.StyleHeader = func(s string) string { return s }
	}
	return o, nil
}

// Header returns the column header line for width bytes per row.
func Header(width int, charset string) string {
	var b strings.Builder
	b.WriteString(headerPrefix)
	for i := range width {
		fmt.Fprintf(&b, " %02X", i)
	}
	b.WriteString(separator)
	b.WriteString(center(charset, width))
	return b.String()
}

// Rule returns the hyphen line drawn under header.
func Rule(header string) string {
	return strings.Repeat("-", utf8.RuneCountInString(header))
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := width - n
	// An odd pad in an odd width puts the extra space on the left.
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Char maps one byte to its character-column rune. Control bytes 1..31
// become '.'; everything else is decoded with enc, and high bytes that
// decode to non-printable runes become '.' as well.
func Char(enc *textenc.Encoding, c byte) rune {
	if c >= 1 && c <= 31 {
		return '.'
	}
	r := rune(c) // multi-byte encodings cannot decode a lone byte: Latin-1
	if enc.SingleByte() {
		r = enc.DecodeByte(c)
	}
	if c >= 0x80 && !unicode.IsPrint(r) {
		return '.'
	}
	return r
}

// Render writes the table for [opts.Begin, opts.End) to w.
func Render(w io.Writer, src Source, opts Options) error {
	opts, err := opts.resolve(src)
	if err != nil {
		return err
	}

	length := src.Len()
	begin, end := opts.Begin, opts.End
	if end <= 0 || end > length {
		end = length
	}
	if begin < 0 || begin > end {
		return fmt.Errorf("dump: begin %d outside [0, %d]: %w", begin, end, storage.ErrOutOfRange)
	}

	bw := bufio.NewWriter(w)
	r := &renderer{w: bw, opts: opts}
	r.header = Header(opts.LineWidth, opts.Charset)

	if begin == end {
		r.writeHeader()
		return bw.Flush()
	}

	width := int64(opts.LineWidth)
	for base := begin - begin%width; base < end; base += width {
		lo, hi := max(base, begin), min(base+width, end)
		data, err := src.Read(storage.Span(lo, hi))
		if err != nil {
			return fmt.Errorf("dump: read 0x%08X-0x%08X: %w", lo, hi, err)
		}
		r.writeRow(base, int(lo-base), data)
	}
	return bw.Flush()
}

type renderer struct {
	w      *bufio.Writer
	opts   Options
	header string
	rows   int
}

func (r *renderer) writeHeader() {
	r.w.WriteByte('\n')
	r.w.WriteString(r.opts.StyleHeader(r.header))
	r.w.WriteByte('\n')
	r.w.WriteString(r.opts.StyleHeader(Rule(r.header)))
	r.w.WriteByte('\n')
}

// writeRow renders one row whose first lead cells are alignment padding.
func (r *renderer) writeRow(base int64, lead int, data []byte) {
	if r.rows%r.opts.RowsPerHeader == 0 {
		r.writeHeader()
	}
	trail := r.opts.LineWidth - lead - len(data)

	fmt.Fprintf(r.w, "%08X  | ", base)
	r.w.WriteString(strings.Repeat(blankCell, lead))
	for _, c := range data {
		fmt.Fprintf(r.w, " %02X", c)
	}
	r.w.WriteString(strings.Repeat(blankCell, trail))
	r.w.WriteString(separator)
	r.w.WriteString(strings.Repeat(" ", lead))
	for _, c := range data {
		r.w.WriteRune(Char(r.opts.Encoding, c))
	}
	r.w.WriteByte('\n')
	r.rows++
}
