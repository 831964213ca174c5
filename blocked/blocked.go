// SPDX-License-Identifier: MIT
// Package: blocked
//
// blocked.go - cache-blocked general matrix multiply.
//
// Algorithm:
//   - Tile the iteration space into (ii, jj, kk) block triples of edge bs.
//   - Inside a triple, walk the clipped ranges [ii, min(ii+bs, m)) etc.
//   - Every output cell is read-modify-written: the running sum starts from
//     the current C[i][j], so successive reduction blocks kk add their
//     partial dot products on top of the earlier ones. For a fixed (ii, jj)
//     all kk blocks are visited before the next (ii, jj) pair.
//
// Complexity:
//   - Time O(m·p·n) for every block size; bs only changes cache behavior.
//   - Space O(m·n) for the result (plus O(m·n) int64 under Checked).

package blocked

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/matmul/matrix"
)

const opMultiply = "blocked.Multiply"

// ErrInvalidBlockSize is returned when blockSize < 1.
var ErrInvalidBlockSize = errors.New("blocked: block size must be >= 1")

// Multiply returns C = A·B for A (m×p) and B (p×n) using square tiles of
// edge blockSize.
//
// Inputs of any Matrix implementation are accepted; non-*Dense operands are
// first copied into a Dense. Neither input is mutated.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (A.Cols != B.Rows),
//   - ErrInvalidBlockSize,
//   - matrix.ErrOverflow (Checked policy only).
//
// Under the default Wrap policy overflow wraps modulo 2^32 and is not an
// error. The result is identical for every blockSize ≥ 1.
func Multiply(a, b matrix.Matrix, blockSize int, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateMulCompatible(a, b); err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}
	if blockSize < 1 {
		return nil, errors.Wrapf(ErrInvalidBlockSize, "%s: blockSize=%d", opMultiply, blockSize)
	}
	o := gatherOptions(opts)

	da, err := matrix.AsDense(a)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}
	db, err := matrix.AsDense(b)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}

	m, p, n := da.Rows(), da.Cols(), db.Cols()
	s := shape{m: m, p: p, n: n, bs: blockSize}
	rowBlocks := (m + blockSize - 1) / blockSize

	if o.overflow == matrix.Checked {
		return multiplyChecked(da.RawData(), db.RawData(), s, rowBlocks, o)
	}

	out, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}
	av, bv, cv := da.RawData(), db.RawData(), out.RawData()
	// one row-block per index so a ragged last band does not stall a worker
	o.pool.ParallelForAtomic(rowBlocks, func(rb int) {
		wrapKernel(av, bv, cv, s, rb*blockSize, min((rb+1)*blockSize, m))
	})

	return out, nil
}

// shape carries the problem dimensions and tile edge through the kernels.
type shape struct {
	m, p, n int // A is m×p, B is p×n
	bs      int // tile edge
}

// wrapKernel accumulates rows [rowLo, rowHi) of C in native int32.
// rowLo must be a multiple of bs so tiles line up with the sequential run.
func wrapKernel(a, b, c []int32, s shape, rowLo, rowHi int) {
	var (
		ii, jj, kk       int
		iMax, jMax, kMax int
		i, j, k          int
		sum              int32
	)
	for ii = rowLo; ii < rowHi; ii += s.bs {
		iMax = min(ii+s.bs, rowHi)
		for jj = 0; jj < s.n; jj += s.bs {
			jMax = min(jj+s.bs, s.n)
			for kk = 0; kk < s.p; kk += s.bs {
				kMax = min(kk+s.bs, s.p)
				for i = ii; i < iMax; i++ {
					aRow := a[i*s.p : (i+1)*s.p]
					cRow := c[i*s.n : (i+1)*s.n]
					for j = jj; j < jMax; j++ {
						sum = cRow[j] // partial sum from earlier kk blocks
						for k = kk; k < kMax; k++ {
							sum += aRow[k] * b[k*s.n+j]
						}
						cRow[j] = sum
					}
				}
			}
		}
	}
}

// checkedKernel is wrapKernel over an int64 accumulator with overflow
// detection. It returns false as soon as a 64-bit step overflows or
// another band has already failed.
func checkedKernel(a, b []int32, c []int64, s shape, rowLo, rowHi int, failed *atomic.Bool) bool {
	var (
		sum, prod int64
		ok        bool
	)
	for ii := rowLo; ii < rowHi; ii += s.bs {
		iMax := min(ii+s.bs, rowHi)
		for jj := 0; jj < s.n; jj += s.bs {
			jMax := min(jj+s.bs, s.n)
			for kk := 0; kk < s.p; kk += s.bs {
				if failed.Load() {
					return false
				}
				kMax := min(kk+s.bs, s.p)
				for i := ii; i < iMax; i++ {
					for j := jj; j < jMax; j++ {
						sum = c[i*s.n+j]
						for k := kk; k < kMax; k++ {
							// int32*int32 always fits in int64
							prod = int64(a[i*s.p+k]) * int64(b[k*s.n+j])
							if sum, ok = matrix.AddInt64(sum, prod); !ok {
								failed.Store(true)
								return false
							}
						}
						c[i*s.n+j] = sum
					}
				}
			}
		}
	}

	return true
}

func multiplyChecked(a, b []int32, s shape, rowBlocks int, o options) (*matrix.Dense, error) {
	wide := make([]int64, s.m*s.n)
	var failed atomic.Bool
	o.pool.ParallelFor(rowBlocks, func(start, end int) {
		checkedKernel(a, b, wide, s, start*s.bs, min(end*s.bs, s.m), &failed)
	})
	if failed.Load() {
		return nil, errors.Wrapf(matrix.ErrOverflow, "%s: 64-bit partial sum overflowed", opMultiply)
	}

	narrow := make([]int32, len(wide))
	var ok bool
	for idx, v := range wide {
		if narrow[idx], ok = matrix.NarrowInt32(v); !ok {
			return nil, errors.Wrapf(matrix.ErrOverflow, "%s: C[%d][%d]=%d does not fit in int32",
				opMultiply, idx/s.n, idx%s.n, v)
		}
	}
	out, err := matrix.NewDenseData(s.m, s.n, narrow)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}

	return out, nil
}
