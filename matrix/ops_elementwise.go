// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Elementwise Add/Sub and the sub-block data movement (extract, join,
//     pad) that the recursive multiplier is built from.
//   - Every operation allocates a fresh result and never mutates operands,
//     except SetSubmatrix which writes into the destination by contract.
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1 or i→j).
//   - Dense fast-path operates on the flat row-major buffer; other Matrix
//     implementations go through At/Set.
//   - Arithmetic is int32 wraparound.

package matrix

import "github.com/cockroachdb/errors"

// Operation name constants for unified error wrapping.
const (
	opAdd          = "Add"
	opSub          = "Sub"
	opSubmatrix    = "Submatrix"
	opSetSubmatrix = "SetSubmatrix"
	opPad          = "Pad"
)

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated.
//
// Implementation:
//   - Stage 1: ValidateSameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: flat loop when both are *Dense, else At-based i→j loop.
//
// Complexity: Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign int32, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, opErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, opErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var av, bv int32
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, opErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, opErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Submatrix copies the rows×cols block of m whose top-left corner is
// (r0, c0) into a fresh Dense. Source and result never alias.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (rows/cols ≤ 0),
//   - ErrOutOfRange when the block does not fit inside m.
//
// Complexity: O(rows*cols).
func Submatrix(m Matrix, r0, c0, rows, cols int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf(opSubmatrix, err)
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, opErrorf(opSubmatrix, err)
	}
	if r0 < 0 || c0 < 0 || r0+rows > m.Rows() || c0+cols > m.Cols() {
		return nil, errors.Wrapf(ErrOutOfRange, "%s: block %dx%d at (%d,%d) exceeds %dx%d",
			opSubmatrix, rows, cols, r0, c0, m.Rows(), m.Cols())
	}

	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			src := (r0+i)*d.c + c0
			copy(out.data[i*cols:(i+1)*cols], d.data[src:src+cols])
		}

		return out, nil
	}

	var v int32
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(r0+i, c0+j); err != nil {
				return nil, opErrorf(opSubmatrix, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}

// SetSubmatrix writes src into dst with src's top-left corner at (r0, c0).
// dst is mutated; src is only read. dst and src must not be the same matrix.
//
// Errors: ErrNilMatrix, ErrOutOfRange (block does not fit).
// Complexity: O(src.Rows()*src.Cols()).
func SetSubmatrix(dst, src Matrix, r0, c0 int) error {
	if err := ValidateNotNil(dst); err != nil {
		return opErrorf(opSetSubmatrix, err)
	}
	if err := ValidateNotNil(src); err != nil {
		return opErrorf(opSetSubmatrix, err)
	}
	rows, cols := src.Rows(), src.Cols()
	if r0 < 0 || c0 < 0 || r0+rows > dst.Rows() || c0+cols > dst.Cols() {
		return errors.Wrapf(ErrOutOfRange, "%s: block %dx%d at (%d,%d) exceeds %dx%d",
			opSetSubmatrix, rows, cols, r0, c0, dst.Rows(), dst.Cols())
	}

	dd, okD := dst.(*Dense)
	ds, okS := src.(*Dense)
	if okD && okS {
		for i := 0; i < rows; i++ {
			dstOff := (r0+i)*dd.c + c0
			copy(dd.data[dstOff:dstOff+cols], ds.data[i*cols:(i+1)*cols])
		}

		return nil
	}

	var (
		v   int32
		err error
	)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = src.At(i, j); err != nil {
				return opErrorf(opSetSubmatrix, err)
			}
			if err = dst.Set(r0+i, c0+j, v); err != nil {
				return opErrorf(opSetSubmatrix, err)
			}
		}
	}

	return nil
}

// Pad returns a rows×cols copy of m with m in the top-left corner and zeros
// elsewhere. rows/cols must be at least m's dimensions.
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrOutOfRange (shrinking).
// Complexity: O(rows*cols).
func Pad(m Matrix, rows, cols int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf(opPad, err)
	}
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, opErrorf(opPad, err)
	}
	if err = SetSubmatrix(out, m, 0, 0); err != nil {
		return nil, opErrorf(opPad, err)
	}

	return out, nil
}

// Equal reports whether a and b have the same shape and identical elements.
// Nil operands are equal only to each other.
// Complexity: O(r*c).
func Equal(a, b Matrix) bool {
	aNil, bNil := ValidateNotNil(a) != nil, ValidateNotNil(b) != nil
	if aNil || bNil {
		return aNil && bNil
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	if da, ok := a.(*Dense); ok {
		if db, ok := b.(*Dense); ok {
			for idx := range da.data {
				if da.data[idx] != db.data[idx] {
					return false
				}
			}

			return true
		}
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, errA := a.At(i, j)
			bv, errB := b.At(i, j)
			if errA != nil || errB != nil || av != bv {
				return false
			}
		}
	}

	return true
}
