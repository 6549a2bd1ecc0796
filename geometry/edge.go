// SPDX-License-Identifier: MIT
package geometry

import "github.com/A5-Website/atom-5-nexus/core"

// EdgeGeometry is the renderer-independent sampled form of one edge.
// Points, Radii and Opacities all have Segments+1 entries.
type EdgeGeometry struct {
	From      int         `json:"from"`
	To        int         `json:"to"`
	Curve     Curve       `json:"curve"`
	Points    []core.Vec3 `json:"points"`
	Radii     []float64   `json:"radii"`
	Opacities []float64   `json:"opacities"`
}

// Build samples the curve start→end with the given control offset into
// segments pieces and evaluates profile at every sample. It is a pure
// function of its arguments. From and To are left zero for the caller.
func Build(start, end, offset core.Vec3, segments int, profile Profile) (EdgeGeometry, error) {
	curve := NewCurve(start, end, offset)
	pts, err := curve.Sample(segments)
	if err != nil {
		return EdgeGeometry{}, err
	}
	radii := make([]float64, len(pts))
	alphas := make([]float64, len(pts))
	for i := range pts {
		t := float64(i) / float64(segments)
		radii[i] = profile.RadiusAt(t)
		alphas[i] = profile.OpacityAt(t)
	}

	return EdgeGeometry{Curve: curve, Points: pts, Radii: radii, Opacities: alphas}, nil
}
