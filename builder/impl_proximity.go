// SPDX-License-Identifier: MIT
// Package: nexus/builder
//
// impl_proximity.go - implementation of Proximity(p) constructor.
//
// Canonical model:
//   - N nodes placed uniformly at random in the cube [-E,E]³ (square [-E,E]²
//     for planar graphs).
//   - Greedy nearest-neighbour proximity graph: each node i draws its own cap
//     c_i ∈ [MinConnections, MaxConnections], then connects to the nearest
//     other nodes in ascending distance while count < c_i and distance < D.
//   - Not a spanning structure: disconnected components and asymmetric degree
//     are expected. A→B and B→A are chosen independently and both kept.
//
// Contract:
//   - NodeCount ≥ 0 (else ErrTooFewNodes). 0 yields an empty graph.
//   - 0 ≤ MinConnections ≤ MaxConnections (else ErrBadCapRange).
//   - RegionHalfExtent, MaxConnectionDistance finite and ≥ 0
//     (else ErrBadExtent / ErrBadDistance). D = 0 yields nodes without edges.
//   - cfg.rng must be non-nil when NodeCount > 0 (else ErrNeedRandSource).
//
// Complexity:
//   - Time: O(N² log N) (a sorted distance list per node).
//   - Space: O(N) scratch, reused across nodes.
//
// Determinism:
//   - RNG consumption order: per node (x, y[, z][, size]) for i asc, then one
//     cap draw per node for i asc.
//   - Ties in distance are broken by ascending node index.

package builder

import (
	"fmt"
	"sort"

	"github.com/A5-Website/atom-5-nexus/core"
)

// ProximityParams is the construction input of the graph generator.
type ProximityParams struct {
	// NodeCount is N, the number of nodes to place.
	NodeCount int
	// RegionHalfExtent is E; coordinates are drawn from [-E, E].
	RegionHalfExtent float64
	// MaxConnectionDistance is D; only pairs strictly closer than D connect.
	MaxConnectionDistance float64
	// MinConnections and MaxConnections bound each node's randomly drawn cap.
	MinConnections int
	MaxConnections int
}

// candidate is a (node, distance) pair in a node's sorted distance list.
type candidate struct {
	index    int
	distance float64
}

// Proximity returns a Constructor that places p.NodeCount random nodes and
// links each to its nearest neighbours.
func Proximity(p ProximityParams) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		// 1) Validate parameters early (no side effects on invalid input).
		if err := validateMin(MethodProximity, p.NodeCount, MinProximityNodes); err != nil {
			return err
		}
		if err := validateCapRange(MethodProximity, p.MinConnections, p.MaxConnections); err != nil {
			return err
		}
		if err := validateNonNegative(MethodProximity, "extent", p.RegionHalfExtent, ErrBadExtent); err != nil {
			return err
		}
		if err := validateNonNegative(MethodProximity, "distance", p.MaxConnectionDistance, ErrBadDistance); err != nil {
			return err
		}
		if p.NodeCount == 0 {
			return nil
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", MethodProximity, ErrNeedRandSource)
		}

		rng := cfg.rng
		planar := g.Planar()
		extent := p.RegionHalfExtent
		base := g.NodeCount()

		// 2) Place nodes. uniform(-E,E) = (2u - 1)·E.
		for i := 0; i < p.NodeCount; i++ {
			pos := core.Vec3{
				X: (2*rng.Float64() - 1) * extent,
				Y: (2*rng.Float64() - 1) * extent,
			}
			if !planar {
				pos.Z = (2*rng.Float64() - 1) * extent
			}
			if _, err := g.AddNode(pos, cfg.nodeSize()); err != nil {
				return fmt.Errorf("%s: AddNode(%d): %w: %w", MethodProximity, i, ErrConstructFailed, err)
			}
		}

		// 3) Connect greedily, nearest first.
		span := p.MaxConnections - p.MinConnections + 1
		positions := g.Positions()
		scratch := make([]candidate, 0, p.NodeCount)

		for i := base; i < base+p.NodeCount; i++ {
			limit := p.MinConnections + rng.Intn(span)

			scratch = scratch[:0]
			for j := base; j < base+p.NodeCount; j++ {
				if j == i {
					continue
				}
				scratch = append(scratch, candidate{index: j, distance: positions[i].Dist(positions[j])})
			}
			sort.Slice(scratch, func(a, b int) bool {
				if scratch[a].distance != scratch[b].distance {
					return scratch[a].distance < scratch[b].distance
				}
				return scratch[a].index < scratch[b].index
			})

			count := 0
			for _, c := range scratch {
				if count >= limit || c.distance >= p.MaxConnectionDistance {
					break
				}
				if err := g.Connect(i, c.index); err != nil {
					return fmt.Errorf("%s: Connect(%d→%d): %w: %w", MethodProximity, i, c.index, ErrConstructFailed, err)
				}
				count++
			}
		}

		return nil
	}
}
