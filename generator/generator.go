// SPDX-License-Identifier: MIT
// Package: generator
//
// generator.go - bounded random fill.

package generator

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/matmul/matrix"
)

// ErrInvalidRange is returned when high <= low.
var ErrInvalidRange = errors.New("generator: high must be greater than low")

// Fill returns a rows×cols matrix whose elements are drawn uniformly from
// [low, high), row-major.
// Errors: matrix.ErrInvalidDimensions, ErrInvalidRange.
// Complexity: O(rows*cols).
func Fill(rows, cols int, low, high int32, opts ...Option) (*matrix.Dense, error) {
	if high <= low {
		return nil, errors.Wrapf(ErrInvalidRange, "Fill: [%d, %d)", low, high)
	}
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, errors.Wrap(err, "Fill")
	}

	c := newConfig(opts)
	span := int64(high) - int64(low) // up to 2^32-1, fits Int63n
	data := m.RawData()
	for i := range data {
		data[i] = int32(int64(low) + c.rng.Int63n(span))
	}

	return m, nil
}

// FillSquare is Fill(n, n, low, high, opts...).
func FillSquare(n int, low, high int32, opts ...Option) (*matrix.Dense, error) {
	return Fill(n, n, low, high, opts...)
}

// Pair returns two independent n×n matrices drawn from one source, A first.
// With WithSeed the pair is reproducible as a whole.
func Pair(n int, low, high int32, opts ...Option) (a, b *matrix.Dense, err error) {
	c := newConfig(opts)
	shared := WithRand(c.rng)
	if a, err = FillSquare(n, low, high, shared); err != nil {
		return nil, nil, err
	}
	if b, err = FillSquare(n, low, high, shared); err != nil {
		return nil, nil, err
	}

	return a, b, nil
}
