// SPDX-License-Identifier: MIT
// Package: strassen
//
// kernels.go - elementwise and base-case kernels.
//
// The recursion is written once over an element type T and always wraps.
// Wrap runs it on int32, so results are exact modulo 2^32. Checked runs it
// on int64, exact modulo 2^64, and decides afterwards whether that residue
// is the true product. Kernels work on flat h×h row-major slices.

package strassen

type element interface {
	~int32 | ~int64
}

// kernels bundles the arithmetic one element width needs.
type kernels[T element] struct {
	add  func(dst, a, b []T)
	sub  func(dst, a, b []T)
	leaf func(dst, a, b []T, n int) // dst = a·b, all n×n
}

var (
	narrowKernels = kernels[int32]{add: addWrap[int32], sub: subWrap[int32], leaf: leafWrap[int32]}
	wideKernels   = kernels[int64]{add: addWrap[int64], sub: subWrap[int64], leaf: leafWrap[int64]}
)

func addWrap[T element](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subWrap[T element](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// leafWrap is the i-k-j product; the inner loop streams rows of b and dst.
func leafWrap[T element](dst, a, b []T, n int) {
	clear(dst)
	for i := 0; i < n; i++ {
		dRow := dst[i*n : (i+1)*n]
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			if aik == 0 {
				continue
			}
			bRow := b[k*n : (k+1)*n]
			for j, bkj := range bRow {
				dRow[j] += aik * bkj
			}
		}
	}
}

// split copies the four h×h quadrants of the n×n src.
func split[T element](src []T, n int, q11, q12, q21, q22 []T) {
	h := n / 2
	for i := 0; i < h; i++ {
		top := src[i*n : (i+1)*n]
		bot := src[(i+h)*n : (i+h+1)*n]
		copy(q11[i*h:(i+1)*h], top[:h])
		copy(q12[i*h:(i+1)*h], top[h:])
		copy(q21[i*h:(i+1)*h], bot[:h])
		copy(q22[i*h:(i+1)*h], bot[h:])
	}
}

// join writes the h×h block q into dst (n×n) at (r0, c0).
func join[T element](dst []T, n int, q []T, r0, c0 int) {
	h := n / 2
	for i := 0; i < h; i++ {
		copy(dst[(r0+i)*n+c0:(r0+i)*n+c0+h], q[i*h:(i+1)*h])
	}
}
