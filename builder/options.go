// SPDX-License-Identifier: MIT
// Package: nexus/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes a constructor by mutating a builderConfig before
// graph construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
// The same seed, options and constructor order always yield the same graph.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNodeSize sets the visual node size range [min,max]. Equal bounds give
// every node the same size. Panics when min < 0, max < min or either bound
// is not finite.
func WithNodeSize(min, max float64) BuilderOption {
	if min < 0 || max < min || math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) {
		panic("builder: WithNodeSize(min<0 || max<min)")
	}
	return func(c *builderConfig) {
		c.sizeMin, c.sizeMax = min, max
	}
}
