// Package buf contains overflow-checked arithmetic for byte offsets.
package buf

import "math"

// Add adds a and b, returning ok = false when the result would overflow int64.
func Add(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Clamp returns the end of [off, off+n) cut at limit. ok is false when off
// lies outside [0, limit] or n is negative.
//
//	end, ok := buf.Clamp(start, want, size)
//	if !ok {
//	    return fmt.Errorf("read at %d: out of range", start)
//	}
//	// size-start >= end-start >= 0
func Clamp(off, n, limit int64) (int64, bool) {
	if off < 0 || n < 0 || off > limit {
		return 0, false
	}
	end, ok := Add(off, n)
	if !ok || end > limit {
		return limit, true
	}
	return end, true
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int64) ([]byte, bool) {
	if off < 0 || n < 0 || off > int64(len(b)) {
		return nil, false
	}
	end, ok := Add(off, n)
	if !ok || end > int64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}
