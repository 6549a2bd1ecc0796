// SPDX-License-Identifier: MIT
// Package: nexus/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults:
//   • rng      = nil    (stochastic constructors fail with ErrNeedRandSource)
//   • sizeMin  = 0.08   (node sphere radius of the site background)
//   • sizeMax  = 0.08

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand

	// Visual node size range; equal bounds mean a fixed size.
	sizeMin float64
	sizeMax float64
}

// DefaultNodeSize is the visual size given to nodes when WithNodeSize is not used.
const DefaultNodeSize = 0.08

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:     nil,
		sizeMin: DefaultNodeSize,
		sizeMax: DefaultNodeSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// nodeSize draws a visual size from [sizeMin, sizeMax]. It consumes one RNG
// value only when the range is non-degenerate, so a fixed size leaves the
// random stream untouched.
func (c builderConfig) nodeSize() float64 {
	if c.sizeMax <= c.sizeMin || c.rng == nil {
		return c.sizeMin
	}

	return c.sizeMin + c.rng.Float64()*(c.sizeMax-c.sizeMin)
}
