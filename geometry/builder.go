// SPDX-License-Identifier: MIT
// Package: nexus/geometry
//
// builder.go - per-graph curve cache.
//
// Design:
//   • One random offset per directed edge, drawn in g.Edges() order:
//     x, y, then z (z skipped for planar graphs), each uniform in
//     [-curvature, curvature].
//   • Offsets never change after NewBuilder; A→B and B→A get independent
//     offsets and therefore distinct curves.
//   • Options follow the functional pattern; an invalid value is recorded
//     and surfaced as ErrOptionViolation from NewBuilder.

package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/A5-Website/atom-5-nexus/core"
)

const (
	// DefaultCurvature bounds each offset component.
	DefaultCurvature = 0.5
	// DefaultSegments is the default samples-per-curve count S.
	DefaultSegments = 20
)

// Option configures a Builder.
type Option func(*Options)

// Options holds the tunables of a Builder.
type Options struct {
	Curvature float64
	Segments  int
	Profile   Profile
	Rand      *rand.Rand

	err error
}

// DefaultOptions returns curvature 0.5, 20 segments, DefaultProfile and no RNG
// (straight curves unless WithRand or WithSeed is given).
func DefaultOptions() Options {
	return Options{
		Curvature: DefaultCurvature,
		Segments:  DefaultSegments,
		Profile:   DefaultProfile,
	}
}

// WithCurvature sets the offset bound; c < 0 is a violation.
func WithCurvature(c float64) Option {
	return func(o *Options) {
		if c < 0 || math.IsNaN(c) {
			o.err = fmt.Errorf("%w: curvature cannot be negative (%g)", ErrOptionViolation, c)
			return
		}
		o.Curvature = c
	}
}

// WithSegments sets S; s < 1 is a violation.
func WithSegments(s int) Option {
	return func(o *Options) {
		if s < 1 {
			o.err = fmt.Errorf("%w: segments must be ≥ 1 (%d)", ErrOptionViolation, s)
			return
		}
		o.Segments = s
	}
}

// WithProfile sets the fade profile; ranges must satisfy 0 ≤ Min ≤ Max.
func WithProfile(p Profile) Option {
	return func(o *Options) {
		if !p.Radius.Valid() || !p.Opacity.Valid() {
			o.err = fmt.Errorf("%w: profile ranges %+v/%+v", ErrOptionViolation, p.Radius, p.Opacity)
			return
		}
		o.Profile = p
	}
}

// WithRand supplies the offset RNG. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed seeds a fresh offset RNG.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// Builder caches per-edge offsets for one graph and produces EdgeGeometry.
// It is read-only after NewBuilder and safe for concurrent readers.
type Builder struct {
	graph   *core.Graph
	opts    Options
	edges   []core.Edge
	offsets map[core.Edge]core.Vec3
}

// NewBuilder draws the per-edge offsets of g.
func NewBuilder(g *core.Graph, opts ...Option) (*Builder, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	edges := g.Edges()
	b := &Builder{
		graph:   g,
		opts:    o,
		edges:   edges,
		offsets: make(map[core.Edge]core.Vec3, len(edges)),
	}
	for _, e := range edges {
		b.offsets[e] = b.drawOffset(g.Planar())
	}

	return b, nil
}

// drawOffset returns a component-wise uniform vector in [-c, c].
func (b *Builder) drawOffset(planar bool) core.Vec3 {
	r, c := b.opts.Rand, b.opts.Curvature
	if r == nil || c == 0 {
		return core.Vec3{}
	}
	v := core.Vec3{
		X: (2*r.Float64() - 1) * c,
		Y: (2*r.Float64() - 1) * c,
	}
	if !planar {
		v.Z = (2*r.Float64() - 1) * c
	}

	return v
}

// Segments returns S.
func (b *Builder) Segments() int { return b.opts.Segments }

// Profile returns the fade profile in use.
func (b *Builder) Profile() Profile { return b.opts.Profile }

// Offset returns the cached control offset of from→to.
func (b *Builder) Offset(from, to int) (core.Vec3, bool) {
	v, ok := b.offsets[core.Edge{From: from, To: to}]
	return v, ok
}

// Curve returns the curve of from→to.
func (b *Builder) Curve(from, to int) (Curve, error) {
	off, ok := b.Offset(from, to)
	if !ok {
		return Curve{}, fmt.Errorf("geometry: Curve(%d→%d): %w", from, to, ErrEdgeNotFound)
	}
	a, _ := b.graph.Position(from)
	z, _ := b.graph.Position(to)

	return NewCurve(a, z, off), nil
}

// Edge returns the sampled geometry of from→to.
func (b *Builder) Edge(from, to int) (EdgeGeometry, error) {
	off, ok := b.Offset(from, to)
	if !ok {
		return EdgeGeometry{}, fmt.Errorf("geometry: Edge(%d→%d): %w", from, to, ErrEdgeNotFound)
	}
	a, _ := b.graph.Position(from)
	z, _ := b.graph.Position(to)
	eg, err := Build(a, z, off, b.opts.Segments, b.opts.Profile)
	if err != nil {
		return EdgeGeometry{}, err
	}
	eg.From, eg.To = from, to

	return eg, nil
}

// All returns the geometry of every edge in g.Edges() order.
func (b *Builder) All() []EdgeGeometry {
	out := make([]EdgeGeometry, 0, len(b.edges))
	for _, e := range b.edges {
		// offsets exist for every cached edge, so Edge cannot fail here
		eg, err := b.Edge(e.From, e.To)
		if err != nil {
			continue
		}
		out = append(out, eg)
	}

	return out
}
