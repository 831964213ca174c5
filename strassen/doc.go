// SPDX-License-Identifier: MIT

// Package strassen implements Strassen's recursive multiplication of square
// int32 matrices whose size is a power of two.
//
// Each level splits A and B into quadrants and forms seven half-size
// products instead of eight, giving O(n^log2(7)) ≈ O(n^2.807) arithmetic.
// Quadrants, operand sums and products live in a scratch arena allocated
// once per call and indexed by recursion depth; see ArenaSize.
//
// Options:
//
//   - WithLeafSize(k): direct product at or below k×k (default 1).
//   - WithPadding(): zero-pad a square non-power-of-two input, crop the result.
//   - WithOverflow(matrix.Checked): the exact product, matrix.ErrOverflow
//     only when a result falls outside int32. The recursion runs in
//     wrapping int64 when n·max|A|·max|B| < 2^63 and defers to the checked
//     blocked kernel otherwise.
//   - WithParallelDepth(d): the seven products of the top d levels run
//     concurrently, each with its own arena.
//
// Non-square, mismatched or (without padding) non-power-of-two operands
// fail with matrix.ErrInvalidShape. Under the default Wrap policy results
// wrap modulo 2^32 and match the blocked package bit for bit.
package strassen
