// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// matrix, blocked and strassen packages. Algorithms return these sentinels
// (optionally wrapped with context) and tests check them via errors.Is.
// No algorithm panics on user-triggered error conditions; panics are
// reserved for option constructors receiving nonsensical values.

package matrix

import "github.com/cockroachdb/errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Context is
// attached at the call site with errors.Wrapf(ErrX, "...") or through
// opErrorf; callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> dimensions -> shape relation -> numeric policy (overflow).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrRaggedRows signals that a row-of-rows literal has rows of different lengths.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add/Sub with different shapes, or a product where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidShape signals that an operand violates a shape precondition
	// beyond plain compatibility (square, equal size, power-of-two side).
	ErrInvalidShape = errors.New("matrix: invalid shape")

	// ErrOverflow is returned only under the Checked overflow policy when a
	// value leaves the representable range.
	ErrOverflow = errors.New("matrix: integer overflow")

	// ErrParse reports malformed matrix text.
	ErrParse = errors.New("matrix: parse error")
)

// opErrorf wraps err with an operation tag, preserving the cause for errors.Is.
// Use only when err != nil.
func opErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}
