// Package matmul multiplies dense int32 matrices with two algorithms and
// measures what each one costs.
//
// What is inside?
//
//	matrix/      Matrix interface, row-major Dense, validators, quadrant
//	             copy/join, padding, overflow policies, text parse/format
//	blocked/     cache-blocked (tiled) multiplication of rectangular operands
//	strassen/    Strassen recursion with a depth-indexed scratch arena
//	generator/   seeded bounded random fill
//	probe/       elapsed time, heap and RSS deltas around a closure
//	workerpool/  persistent goroutine pool for parallel row-blocks
//	config/      harness settings: defaults, YAML, MATBENCH_* env, flags
//	bench/       generate → measure → cross-check → report
//	cmd/matbench command-line entry point
//
// Both multipliers return fresh matrices and never mutate their inputs.
// Arithmetic wraps modulo 2^32 by default, so the two algorithms agree bit
// for bit even when products overflow; matrix.Checked turns overflow into
// matrix.ErrOverflow instead.
//
// Quick start:
//
//	a, _ := generator.FillSquare(256, 0, 10, generator.WithSeed(1))
//	b, _ := generator.FillSquare(256, 0, 10, generator.WithSeed(2))
//	c1, _ := blocked.Multiply(a, b, blocked.DefaultBlockSize)
//	c2, _ := strassen.Multiply(a, b, strassen.WithLeafSize(strassen.TunedLeafSize))
//	fmt.Println(matrix.Equal(c1, c2)) // true
package matmul
