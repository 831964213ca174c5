// SPDX-License-Identifier: MIT

// Package blocked implements cache-blocked (tiled) multiplication of
// rectangular int32 matrices.
//
// What:
//
//   - Multiply(A, B, blockSize) computes C = A·B for A (m×p), B (p×n).
//   - The loop nest is tiled into blockSize-edged (row, column, reduction)
//     blocks; each output cell accumulates the partial dot products of its
//     reduction blocks in place.
//
// Why tiling:
//
//   - The arithmetic is the plain O(m·p·n) triple loop; tiling only keeps the
//     working set of A, B and C tiles resident in cache while they are reused.
//   - Any blockSize ≥ 1 produces the same result. blockSize ≥ max(m, p, n)
//     degenerates to the untiled triple loop.
//
// Numerics:
//
//   - Default: int32 wraparound (modulo 2^32), never an error.
//   - WithOverflow(matrix.Checked): int64 accumulation, matrix.ErrOverflow
//     when a result does not fit in int32.
//
// Concurrency:
//
//   - Sequential by default. WithWorkers(pool) spreads row-blocks over a
//     workerpool.Pool; bands of output rows are disjoint, so no locking.
//     Wrap hands row-blocks out one at a time. Checked splits them into
//     contiguous bands that share a failure flag.
//
// Errors:
//
//   - matrix.ErrDimensionMismatch when A.Cols != B.Rows, ErrInvalidBlockSize
//     when blockSize < 1, matrix.ErrNilMatrix for nil operands.
package blocked
