// SPDX-License-Identifier: MIT
// Package: generator
//
// options.go - RNG configuration.
//
// Options are applied in order; later ones override earlier ones.

package generator

import (
	"math/rand"
	"time"
)

// Option configures one Fill call.
type Option func(*config)

type config struct {
	rng *rand.Rand // nil until resolved in newConfig
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return c
}

// WithSeed draws from a source seeded with seed. Same seed, same matrix.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand draws from r, advancing its state. Panics on nil.
// A *rand.Rand is not safe for concurrent use; do not share r across
// goroutines without external locking.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generator: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}
