package storage

import "bytes"

// ToEnd as a Range stop means "through the end of the data".
const ToEnd int64 = -1

// Range is a half-open byte interval [Start, Stop). Step exists so that
// stepped access can be rejected explicitly; only 0 and 1 are accepted.
type Range struct {
	Start int64
	Stop  int64
	Step  int64
}

// Span returns the range [start, stop).
func Span(start, stop int64) Range {
	return Range{Start: start, Stop: stop}
}

// From returns the range [start, end of data).
func From(start int64) Range {
	return Range{Start: start, Stop: ToEnd}
}

// Open reports whether the range has no explicit stop.
func (r Range) Open() bool { return r.Stop == ToEnd }

func (r Range) validate(op, path string) error {
	if r.Step != 0 && r.Step != 1 {
		return newError(ErrKindUnsupportedRange, op, path, nil)
	}
	if r.Start < 0 || r.Stop < ToEnd || (!r.Open() && r.Stop < r.Start) {
		return newError(ErrKindOutOfRange, op, path, nil)
	}
	return nil
}

// fill tiles value and truncates it to exactly n bytes.
func fill(value []byte, n int64) []byte {
	if int64(len(value)) == n {
		return value
	}
	reps := n/int64(len(value)) + 1
	return bytes.Repeat(value, int(reps))[:n]
}
