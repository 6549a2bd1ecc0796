// SPDX-License-Identifier: MIT
package builder_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/A5-Website/atom-5-nexus/builder"
)

// TestProximity_Properties checks the structural guarantees over random
// parameters and seeds.
func TestProximity_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("edges are valid, short and capped", prop.ForAll(
		func(n, lo, extra int, extent, dist float64, seed int64) bool {
			p := builder.ProximityParams{
				NodeCount:             n,
				RegionHalfExtent:      extent,
				MaxConnectionDistance: dist,
				MinConnections:        lo,
				MaxConnections:        lo + extra,
			}
			g, err := builder.Build(p, seed)
			if err != nil || g.NodeCount() != n {
				return false
			}
			positions := g.Positions()
			for i := 0; i < n; i++ {
				nbrs, _ := g.Neighbors(i)
				if len(nbrs) > p.MaxConnections {
					return false
				}
				for _, j := range nbrs {
					if j == i || j < 0 || j >= n {
						return false
					}
					if positions[i].Dist(positions[j]) >= dist {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 60),
		gen.IntRange(0, 5),
		gen.IntRange(0, 4),
		gen.Float64Range(0, 20),
		gen.Float64Range(0, 30),
		gen.Int64(),
	))

	properties.Property("same seed gives the same graph", prop.ForAll(
		func(seed int64) bool {
			p := builder.ProximityParams{NodeCount: 30, RegionHalfExtent: 7.5, MaxConnectionDistance: 8, MinConnections: 4, MaxConnections: 6}
			a, errA := builder.Build(p, seed)
			b, errB := builder.Build(p, seed)
			if errA != nil || errB != nil {
				return false
			}
			ea, eb := a.Edges(), b.Edges()
			if len(ea) != len(eb) {
				return false
			}
			for i := range ea {
				if ea[i] != eb[i] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
