// SPDX-License-Identifier: MIT
// Package: nexus/geometry
//
// curve.go - quadratic Bézier edges and straight-line helpers.
//
// Contract:
//   • Point(t) clamps t to [0,1]; Point(0) == Start and Point(1) == End exactly.
//   • Sample(S) returns S+1 points at t = i/S; S < 1 ⇒ ErrBadSegments.
//   • GlowSegment returns the sub-segment of length L centred on t, with both
//     ends clamped to [0,1] (shorter near the endpoints).

package geometry

import (
	"fmt"

	"github.com/A5-Website/atom-5-nexus/core"
)

// Curve is a quadratic Bézier curve from Start to End through Control.
type Curve struct {
	Start   core.Vec3 `json:"start"`
	Control core.Vec3 `json:"control"`
	End     core.Vec3 `json:"end"`
}

// NewCurve returns the curve whose control point is the midpoint of
// start→end displaced by offset. A zero offset gives a straight segment.
func NewCurve(start, end, offset core.Vec3) Curve {
	return Curve{
		Start:   start,
		Control: core.Midpoint(start, end).Add(offset),
		End:     end,
	}
}

// Point evaluates the curve at t: (1−t)²·S + 2(1−t)t·C + t²·E.
func (c Curve) Point(t float64) core.Vec3 {
	t = Clamp(t, 0, 1)
	switch t {
	case 0:
		return c.Start
	case 1:
		return c.End
	}
	u := 1 - t

	return c.Start.Scale(u * u).Add(c.Control.Scale(2 * u * t)).Add(c.End.Scale(t * t))
}

// Sample returns segments+1 evenly spaced points along the curve.
func (c Curve) Sample(segments int) ([]core.Vec3, error) {
	if segments < 1 {
		return nil, fmt.Errorf("geometry: Sample(%d): %w", segments, ErrBadSegments)
	}
	pts := make([]core.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = c.Point(float64(i) / float64(segments))
	}

	return pts, nil
}

// Lerp interpolates the straight segment a→b at t clamped to [0,1].
// Lerp(a, b, 1) is exactly b.
func Lerp(a, b core.Vec3, t float64) core.Vec3 {
	t = Clamp(t, 0, 1)
	if t == 1 {
		return b
	}
	return core.Lerp(a, b, t)
}

// GlowSegment returns the endpoints of the short glowing segment of the
// given length centred on t along the straight segment a→b.
func GlowSegment(a, b core.Vec3, t, length float64) (core.Vec3, core.Vec3) {
	half := length / 2
	lo := Clamp(t-half, 0, 1)
	hi := Clamp(t+half, 0, 1)

	return core.Lerp(a, b, lo), core.Lerp(a, b, hi)
}
