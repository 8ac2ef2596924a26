// Package buf contains overflow-checked integer helpers used when sizes
// coming from callers are combined with header overhead.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// FitsAligned reports whether n can be rounded up to a multiple of alignment
// and then grown by extra bytes without overflowing int.
func FitsAligned(n, alignment, extra int) bool {
	rounded, ok := AddOverflowSafe(n, alignment-1)
	if !ok {
		return false
	}
	_, ok = AddOverflowSafe(rounded, extra)
	return ok
}
