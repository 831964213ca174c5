// SPDX-License-Identifier: MIT

// Package matrix is the data model shared by the multipliers in this module.
//
// The matrix package provides:
//
//   - Matrix, a minimal read/write interface over a rows×cols grid of int32.
//   - Dense, a row-major implementation with a flat backing slice.
//   - Add/Sub, Submatrix/SetSubmatrix and Pad: pure data-movement and
//     elementwise operations on whole matrices. The strassen package pads
//     and crops through Pad and Submatrix, but its recursion runs its own
//     flat kernels over scratch buffers and never calls Add or Sub.
//   - Parse/Format for plain-text literals used by tests and the CLI.
//   - The overflow policy (Wrap, Checked) and its checked 64-bit helpers.
//
// Matrices are value-like: every operation returns a freshly allocated
// result and leaves its operands untouched. Element arithmetic wraps modulo
// 2^32 unless a kernel runs under the Checked policy.
//
// All failures are reported through the sentinels in errors.go and are
// matched with errors.Is.
package matrix
