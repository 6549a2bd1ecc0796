// SPDX-License-Identifier: MIT
// Package: nexus/builder
//
// impl_complete.go - implementation of Complete(n, extent) constructor.
//
// Contract:
//   • n ≥ 0 (else ErrTooFewNodes); extent finite and ≥ 0 (else ErrBadExtent).
//   • Without an RNG, nodes sit evenly on a circle of radius extent in the
//     z = 0 plane (node 0 at angle 0, counter-clockwise).
//   • With an RNG, nodes are uniform in [-extent, extent]³ like Proximity.
//   • Emits every ordered pair (i,j), i≠j, in lexicographic order, so the
//     result is the directed complete graph with n·(n-1) edges.
//   • Returns only sentinel errors; never panics at runtime.
//
// Complexity:
//   • Time: O(n²) edges emission.
//   • Space: O(1) extra.
//
// Complete is the canonical fixture for propagation: with flow probability 1
// every node is reached from any source in one generation.

package builder

import (
	"fmt"
	"math"

	"github.com/A5-Website/atom-5-nexus/core"
)

// Complete returns a Constructor that builds the directed complete graph on n nodes.
func Complete(n int, extent float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodComplete, n, MinCompleteNodes); err != nil {
			return err
		}
		if err := validateNonNegative(MethodComplete, "extent", extent, ErrBadExtent); err != nil {
			return err
		}

		base := g.NodeCount()
		for i := 0; i < n; i++ {
			var pos core.Vec3
			if cfg.rng == nil {
				theta := 2 * math.Pi * float64(i) / float64(n)
				pos = core.V(extent*math.Cos(theta), extent*math.Sin(theta), 0)
			} else {
				pos = core.Vec3{
					X: (2*cfg.rng.Float64() - 1) * extent,
					Y: (2*cfg.rng.Float64() - 1) * extent,
				}
				if !g.Planar() {
					pos.Z = (2*cfg.rng.Float64() - 1) * extent
				}
			}
			if _, err := g.AddNode(pos, cfg.nodeSize()); err != nil {
				return fmt.Errorf("%s: AddNode(%d): %w: %w", MethodComplete, i, ErrConstructFailed, err)
			}
		}

		for i := base; i < base+n; i++ {
			for j := base; j < base+n; j++ {
				if i == j {
					continue
				}
				if err := g.Connect(i, j); err != nil {
					return fmt.Errorf("%s: Connect(%d→%d): %w: %w", MethodComplete, i, j, ErrConstructFailed, err)
				}
			}
		}

		return nil
	}
}
