// SPDX-License-Identifier: MIT
// Package: strassen
//
// options.go - functional configuration for Multiply.
//
// Defaults: leaf size 1 (pure recursion down to scalars), no padding,
// Wrap overflow policy, sequential recursion.

package strassen

import "github.com/katalvlaran/matmul/matrix"

const (
	// DefaultLeafSize recurses all the way down to 1×1 products.
	DefaultLeafSize = 1

	// TunedLeafSize is a practical cutoff below which the naive product
	// beats further recursion on current hardware.
	TunedLeafSize = 64
)

const (
	panicLeafSizeInvalid      = "strassen: WithLeafSize: leaf size must be a power of two >= 1"
	panicParallelDepthInvalid = "strassen: WithParallelDepth: depth must be >= 0"
	panicOverflowInvalid      = "strassen: WithOverflow: unknown overflow policy"
)

// Option mutates the effective options of one Multiply call.
type Option func(*options)

type options struct {
	leaf          int
	pad           bool
	overflow      matrix.Overflow
	parallelDepth int
}

func gatherOptions(opts []Option) options {
	o := options{leaf: DefaultLeafSize, overflow: matrix.Wrap}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLeafSize switches to the direct product once a sub-problem is k×k or
// smaller. Panics unless k is a power of two ≥ 1.
func WithLeafSize(k int) Option {
	if !matrix.IsPowerOfTwo(k) {
		panic(panicLeafSizeInvalid)
	}

	return func(o *options) { o.leaf = k }
}

// WithPadding accepts square inputs whose size is not a power of two by
// zero-padding them to the next power of two and cropping the result.
func WithPadding() Option {
	return func(o *options) { o.pad = true }
}

// WithOverflow selects the overflow policy. Panics on an unknown value.
func WithOverflow(p matrix.Overflow) Option {
	if p != matrix.Wrap && p != matrix.Checked {
		panic(panicOverflowInvalid)
	}

	return func(o *options) { o.overflow = p }
}

// WithParallelDepth computes the seven products of the top d recursion
// levels concurrently. Each branch owns its scratch arena. d = 0 keeps the
// call sequential. Panics on d < 0.
func WithParallelDepth(d int) Option {
	if d < 0 {
		panic(panicParallelDepthInvalid)
	}

	return func(o *options) { o.parallelDepth = d }
}
