// SPDX-License-Identifier: MIT
// Package: nexus/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Constructors attach context with `%w`:
//       fmt.Errorf("%s: n=%d < min=%d: %w", methodProximity, n, 0, ErrTooFewNodes)
//   • Constructors never panic; validation panics are confined to option
//     constructors (WithX...).
//
// Priority when several validations fail (first match wins):
//   ErrTooFewNodes → ErrBadCapRange → ErrBadExtent → ErrBadDistance →
//   ErrNeedRandSource → ErrConstructFailed.

package builder

import "errors"

// ErrTooFewNodes indicates a node count below the constructor minimum.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrBadCapRange indicates a connection cap range with a negative bound or
// with min > max.
var ErrBadCapRange = errors.New("builder: invalid connection cap range")

// ErrBadExtent indicates a negative, NaN or infinite region half-extent.
var ErrBadExtent = errors.New("builder: invalid region extent")

// ErrBadDistance indicates a negative, NaN or infinite connection distance.
var ErrBadDistance = errors.New("builder: invalid connection distance")

// ErrNeedRandSource indicates that a stochastic constructor ran without an
// RNG in the resolved builderConfig (set WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates the core graph rejected a mutation the
// constructor expected to succeed, or a nil constructor was supplied.
var ErrConstructFailed = errors.New("builder: construction failed")
