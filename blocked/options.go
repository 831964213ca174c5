// SPDX-License-Identifier: MIT
// Package: blocked
//
// options.go - functional configuration for Multiply.
//
// Defaults: Wrap overflow policy, sequential execution.

package blocked

import (
	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/workerpool"
)

// DefaultBlockSize is a tile edge that keeps three int32 tiles
// (3 * 16 * 16 * 4 bytes = 3 KiB) well inside a typical 32 KiB L1 cache.
const DefaultBlockSize = 16

const panicOverflowInvalid = "blocked: WithOverflow: unknown overflow policy"

// Option mutates the effective options of one Multiply call.
type Option func(*options)

type options struct {
	overflow matrix.Overflow
	pool     *workerpool.Pool // nil ⇒ sequential
}

func gatherOptions(opts []Option) options {
	o := options{overflow: matrix.Wrap}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithOverflow selects the overflow policy. Panics on an unknown value.
func WithOverflow(p matrix.Overflow) Option {
	if p != matrix.Wrap && p != matrix.Checked {
		panic(panicOverflowInvalid)
	}

	return func(o *options) { o.overflow = p }
}

// WithWorkers distributes row-blocks over pool. Each row-block writes a
// disjoint band of output rows, so the result is identical to the
// sequential run. A nil pool keeps the call sequential.
func WithWorkers(pool *workerpool.Pool) Option {
	return func(o *options) { o.pool = pool }
}
