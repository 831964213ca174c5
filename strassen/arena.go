// SPDX-License-Identifier: MIT
// Package: strassen
//
// arena.go - per-call scratch memory indexed by recursion depth.
//
// Level d of an n×n problem works on h×h blocks, h = n >> (d+1), and needs
// 17 of them: eight input quadrants, two operand temporaries and the seven
// products. All levels are carved from one allocation made before the
// recursion starts, so the recursion itself never allocates.

package strassen

// blocksPerLevel is 8 quadrants + 2 temporaries + 7 products.
const blocksPerLevel = 17

// frame is the scratch for one recursion level.
type frame[T element] struct {
	a11, a12, a21, a22 []T
	b11, b12, b21, b22 []T
	t1, t2             []T
	m                  [7][]T
}

// ArenaSize returns the number of scratch elements a sequential Multiply of
// an n×n problem with the given leaf size allocates (excluding the result).
// n must be a power of two; leaf < 1 is treated as 1.
func ArenaSize(n, leaf int) int {
	total := 0
	for _, h := range levelSizes(n, leaf) {
		total += blocksPerLevel * h * h
	}

	return total
}

// levelSizes lists the block edge h of every level that recurses.
func levelSizes(n, leaf int) []int {
	leaf = max(leaf, 1)
	var hs []int
	for size := n; size > leaf && size > 1; size /= 2 {
		hs = append(hs, size/2)
	}

	return hs
}

// newFrames carves one frame per level out of a single buffer.
// levels caps how many of the levels are materialized.
func newFrames[T element](n, leaf, levels int) []frame[T] {
	hs := levelSizes(n, leaf)
	if levels < len(hs) {
		hs = hs[:levels]
	}
	total := 0
	for _, h := range hs {
		total += blocksPerLevel * h * h
	}

	buf := make([]T, total)
	frames := make([]frame[T], len(hs))
	off := 0
	next := func(sz int) []T {
		s := buf[off : off+sz : off+sz]
		off += sz
		return s
	}
	for d, h := range hs {
		sz := h * h
		f := &frames[d]
		f.a11, f.a12, f.a21, f.a22 = next(sz), next(sz), next(sz), next(sz)
		f.b11, f.b12, f.b21, f.b22 = next(sz), next(sz), next(sz), next(sz)
		f.t1, f.t2 = next(sz), next(sz)
		for k := range f.m {
			f.m[k] = next(sz)
		}
	}

	return frames
}
