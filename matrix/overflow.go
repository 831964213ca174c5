// SPDX-License-Identifier: MIT
// Package: matrix
//
// overflow.go - numeric policy shared by the multipliers.
//
// Wrap (default) is native int32 two's-complement arithmetic: results are
// congruent to the exact product modulo 2^32 and overflow is never an error.
// Checked computes the exact integer product and reports ErrOverflow when
// a result does not fit in int32, or when an exact 64-bit partial sum of the
// i-j-k dot product itself overflows.

package matrix

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// Overflow selects the integer overflow policy of a kernel.
type Overflow uint8

const (
	// Wrap is fixed-width wraparound arithmetic (modulo 2^32).
	Wrap Overflow = iota
	// Checked widens to int64 and fails with ErrOverflow instead of wrapping.
	Checked
)

// String implements fmt.Stringer.
func (o Overflow) String() string {
	switch o {
	case Wrap:
		return "wrap"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("Overflow(%d)", uint8(o))
	}
}

// ParseOverflow maps "wrap"/"checked" to an Overflow value.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "wrap", "":
		return Wrap, nil
	case "checked":
		return Checked, nil
	}

	return Wrap, errors.Newf("matrix: unknown overflow policy %q", s)
}

// AddInt64 returns a+b and false when the sum overflows int64.
func AddInt64(a, b int64) (int64, bool) {
	s := a + b
	// overflow iff operands share a sign that the sum does not
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		return s, false
	}

	return s, true
}

// MulInt64 returns a*b and false when the product overflows int64.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || p/b != a {
		return p, false
	}

	return p, true
}

// NarrowInt32 converts v to int32 and reports whether it fits.
func NarrowInt32(v int64) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return int32(v), false
	}

	return int32(v), true
}
