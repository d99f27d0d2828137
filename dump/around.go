package dump

import (
	"fmt"
	"io"

	"github.com/joshuapare/hexkit/storage"
)

// Default context around a hit.
const (
	DefaultRowsAbove = 2
	DefaultRowsBelow = 3
)

// AroundOptions controls RenderAround. Begin and End in Options are
// ignored; they are derived from the hit.
type AroundOptions struct {
	Options
	RowsAbove int
	RowsBelow int
}

// DefaultAroundOptions returns two rows above and three below.
func DefaultAroundOptions() AroundOptions {
	return AroundOptions{RowsAbove: DefaultRowsAbove, RowsBelow: DefaultRowsBelow}
}

// Banner is the line written before the rows of RenderAround.
func Banner(hit int64) string {
	return fmt.Sprintf("Found at offset 0x%08X", hit)
}

// RenderAround writes a banner for hit followed by the rows around the
// row containing it, clamped to the data.
func RenderAround(w io.Writer, src Source, hit int64, opts AroundOptions) error {
	length := src.Len()
	if hit < 0 || hit > length {
		return fmt.Errorf("dump: hit 0x%08X outside data: %w", hit, storage.ErrOutOfRange)
	}
	o, err := opts.Options.resolve(src)
	if err != nil {
		return err
	}
	width := int64(o.LineWidth)
	row := hit - hit%width

	o.Begin = max(0, row-int64(max(opts.RowsAbove, 0))*width)
	o.End = min(length, row+int64(max(opts.RowsBelow, 0)+1)*width)

	if _, err := fmt.Fprintln(w, Banner(hit)); err != nil {
		return err
	}
	if o.Begin == o.End {
		// Nothing to show (empty data); End <= 0 would otherwise mean "to the end".
		return nil
	}
	return Render(w, src, o)
}

// Finder is a Source that can search.
type Finder interface {
	Source
	Find(needle []byte, start, stop int64) (int64, bool, error)
}

// Search finds the first needle at or after start and renders its
// surroundings. ok is false, and nothing is written, when there is no hit.
func Search(w io.Writer, src Finder, needle []byte, start int64, opts AroundOptions) (hit int64, ok bool, err error) {
	hit, ok, err = src.Find(needle, start, storage.ToEnd)
	if err != nil || !ok {
		return hit, ok, err
	}
	return hit, true, RenderAround(w, src, hit, opts)
}
