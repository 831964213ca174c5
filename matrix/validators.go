// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating shape/nil checks here.
//   - Return sentinel errors wrapped with the validator tag so call sites can
//     add their operation tag on top and callers still match with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and O(1).

package matrix

import "github.com/cockroachdb/errors"

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return errors.Wrap(ErrNilMatrix, "ValidateNotNil")
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return errors.Wrap(ErrNilMatrix, "ValidateNotNil")
	}

	return nil
}

// ValidateSameShape ensures matrices a and b are non-nil with equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return errors.Wrapf(ErrDimensionMismatch,
			"ValidateSameShape: %dx%d vs %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrInvalidShape.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return errors.Wrapf(ErrInvalidShape, "ValidateSquare: %dx%d is not square", m.Rows(), m.Cols())
	}

	return nil
}

// ValidateMulCompatible checks a (m×p) and b (p×n) for a product.
// The message names the expected relation and both observed shapes.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return errors.Wrapf(ErrDimensionMismatch,
			"A is m×p and B must be p×n: got A %dx%d, B %dx%d",
			a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	return nil
}

// IsPowerOfTwo reports whether n is 2^k for some k ≥ 0.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two ≥ n (1 for n ≤ 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
