// SPDX-License-Identifier: MIT
package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/geometry"
)

const eps = 1e-12

func assertVec(t *testing.T, want, got core.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Z, got.Z, eps)
}

func TestFade(t *testing.T) {
	assert.Equal(t, 0.0, geometry.Fade(0))
	assert.Equal(t, 1.0, geometry.Fade(0.5))
	assert.Equal(t, 0.0, geometry.Fade(1))
	assert.InDelta(t, 0.75, geometry.Fade(0.25), eps)
	assert.InDelta(t, geometry.Fade(0.2), geometry.Fade(0.8), eps)
	// clamped outside [0,1]
	assert.Equal(t, 0.0, geometry.Fade(-3))
	assert.Equal(t, 0.0, geometry.Fade(4))
}

func TestProfile_Modes(t *testing.T) {
	r := geometry.Range{Min: 1, Max: 3}
	center := geometry.Profile{Mode: geometry.FadeCenter, Radius: r, Opacity: r}
	ends := geometry.Profile{Mode: geometry.FadeEnds, Radius: r, Opacity: r}

	assert.Equal(t, 1.0, center.RadiusAt(0))
	assert.Equal(t, 3.0, center.RadiusAt(0.5))
	assert.Equal(t, 3.0, ends.OpacityAt(0))
	assert.Equal(t, 1.0, ends.OpacityAt(0.5))
	assert.Equal(t, 3.0, ends.OpacityAt(1))
}

func TestCurve_EndpointsAndMidpoint(t *testing.T) {
	a, b := core.V(-1, 0, 2), core.V(3, 4, 2)
	off := core.V(0, 0, 1)
	c := geometry.NewCurve(a, b, off)

	assert.Equal(t, a, c.Point(0))
	assert.Equal(t, b, c.Point(1))
	assert.Equal(t, core.V(1, 2, 3), c.Control)
	// B(0.5) = (S + 2C + E)/4
	assertVec(t, core.V(1, 2, 2.5), c.Point(0.5))

	straight := geometry.NewCurve(a, b, core.Vec3{})
	assertVec(t, core.Midpoint(a, b), straight.Point(0.5))
}

func TestCurve_Sample(t *testing.T) {
	c := geometry.NewCurve(core.V(0, 0, 0), core.V(1, 0, 0), core.V(0, 1, 0))
	pts, err := c.Sample(4)
	require.NoError(t, err)
	require.Len(t, pts, 5)
	assert.Equal(t, c.Start, pts[0])
	assert.Equal(t, c.End, pts[4])

	_, err = c.Sample(0)
	assert.ErrorIs(t, err, geometry.ErrBadSegments)
}

func TestGlowSegment(t *testing.T) {
	a, b := core.V(0, 0, 0), core.V(10, 0, 0)
	lo, hi := geometry.GlowSegment(a, b, 0.5, 0.08)
	assert.InDelta(t, 4.6, lo.X, 1e-9)
	assert.InDelta(t, 5.4, hi.X, 1e-9)

	lo, hi = geometry.GlowSegment(a, b, 0, 0.08)
	assert.Equal(t, a, lo)
	assert.InDelta(t, 0.4, hi.X, 1e-9)
}

func TestBuild_PureAndDimensionIndependent(t *testing.T) {
	p := geometry.DefaultProfile
	e1, err := geometry.Build(core.V(0, 0, 0), core.V(2, 0, 0), core.V(0, 0.3, 0), 8, p)
	require.NoError(t, err)
	e2, err := geometry.Build(core.V(0, 0, 0), core.V(2, 0, 0), core.V(0, 0.3, 0), 8, p)
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
	require.Len(t, e1.Radii, 9)
	require.Len(t, e1.Opacities, 9)
	assert.InDelta(t, p.Radius.Max, e1.Radii[0], eps)
	assert.Equal(t, p.Radius.Min, e1.Radii[4])
	for _, pt := range e1.Points {
		assert.Zero(t, pt.Z, "planar input stays planar")
	}
}

func TestBuilder_StableOffsets(t *testing.T) {
	g, err := builder.Build(builder.ProximityParams{
		NodeCount: 30, RegionHalfExtent: 7.5, MaxConnectionDistance: 8, MinConnections: 4, MaxConnections: 6,
	}, 11)
	require.NoError(t, err)

	b1, err := geometry.NewBuilder(g, geometry.WithSeed(3), geometry.WithSegments(6))
	require.NoError(t, err)
	b2, err := geometry.NewBuilder(g, geometry.WithSeed(3), geometry.WithSegments(6))
	require.NoError(t, err)

	all := b1.All()
	require.Len(t, all, g.EdgeCount())
	assert.Equal(t, all, b2.All())
	assert.Equal(t, all, b1.All(), "offsets do not change between calls")

	for _, eg := range all {
		off, ok := b1.Offset(eg.From, eg.To)
		require.True(t, ok)
		assert.LessOrEqual(t, off.X, geometry.DefaultCurvature)
		assert.GreaterOrEqual(t, off.X, -geometry.DefaultCurvature)
		assert.Len(t, eg.Points, 7)
		a, _ := g.Position(eg.From)
		z, _ := g.Position(eg.To)
		assert.Equal(t, a, eg.Points[0])
		assert.Equal(t, z, eg.Points[6])
	}
}

func TestBuilder_Errors(t *testing.T) {
	_, err := geometry.NewBuilder(nil)
	assert.ErrorIs(t, err, geometry.ErrGraphNil)

	g := core.NewGraph()
	_, err = geometry.NewBuilder(g, geometry.WithSegments(0))
	assert.ErrorIs(t, err, geometry.ErrOptionViolation)
	_, err = geometry.NewBuilder(g, geometry.WithCurvature(-1))
	assert.ErrorIs(t, err, geometry.ErrOptionViolation)
	_, err = geometry.NewBuilder(g, geometry.WithProfile(geometry.Profile{Radius: geometry.Range{Min: 2, Max: 1}}))
	assert.ErrorIs(t, err, geometry.ErrOptionViolation)

	b, err := geometry.NewBuilder(g)
	require.NoError(t, err)
	_, err = b.Edge(0, 1)
	assert.ErrorIs(t, err, geometry.ErrEdgeNotFound)
	assert.Empty(t, b.All())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, geometry.Clamp(-5, 0, 10))
	assert.Equal(t, 10, geometry.Clamp(50, 0, 10))
	assert.Equal(t, 0.25, geometry.Clamp(0.25, 0.0, 1.0))
}
