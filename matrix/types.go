// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the multipliers.
// The Matrix interface is the read/write surface every kernel accepts; the
// concrete row-major implementation is Dense (dense.go).
package matrix

// Matrix represents a two-dimensional mutable grid of int32 values.
//
// Arithmetic on elements follows fixed-width two's-complement semantics:
// overflow wraps modulo 2^32 unless a kernel is run under the Checked
// policy (see overflow.go).
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (int32, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v int32) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}
