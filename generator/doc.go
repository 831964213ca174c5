// SPDX-License-Identifier: MIT

// Package generator fills matrices with bounded pseudo-random integers.
//
// Values are drawn independently and uniformly from the half-open range
// [low, high). Runs are reproducible with WithSeed or WithRand; without
// either, the source is seeded from the clock.
//
//	a, err := generator.FillSquare(128, 0, 10, generator.WithSeed(42))
package generator
