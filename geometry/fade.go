// SPDX-License-Identifier: MIT
package geometry

// FadeMode selects where along a curve the fade profile peaks.
type FadeMode int

const (
	// FadeEnds is brightest and thickest at both endpoints, faint mid-curve.
	FadeEnds FadeMode = iota
	// FadeCenter is brightest mid-curve and vanishes at the endpoints.
	FadeCenter
)

// String implements fmt.Stringer.
func (m FadeMode) String() string {
	switch m {
	case FadeEnds:
		return "ends"
	case FadeCenter:
		return "center"
	default:
		return "unknown"
	}
}

// ParseFadeMode maps "ends"/"center" to a FadeMode.
func ParseFadeMode(s string) (FadeMode, bool) {
	switch s {
	case "ends":
		return FadeEnds, true
	case "center":
		return FadeCenter, true
	default:
		return FadeEnds, false
	}
}

// Fade is the fade law 1 − (2t − 1)² with t clamped to [0,1].
func Fade(t float64) float64 {
	t = Clamp(t, 0, 1)
	k := 2*t - 1

	return 1 - k*k
}

// Range maps a unit value into [Min, Max].
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// At returns Min + (Max − Min)·f.
func (r Range) At(f float64) float64 { return Mix(r.Min, r.Max, f) }

// Valid reports 0 ≤ Min ≤ Max.
func (r Range) Valid() bool { return r.Min >= 0 && r.Min <= r.Max }

// Profile combines a fade mode with radius and opacity ranges.
type Profile struct {
	Mode    FadeMode
	Radius  Range
	Opacity Range
}

// DefaultProfile is bright at the nodes and thin mid-curve.
var DefaultProfile = Profile{
	Mode:    FadeEnds,
	Radius:  Range{Min: 0.005, Max: 0.02},
	Opacity: Range{Min: 0.1, Max: 0.4},
}

// unit evaluates the mode-specific profile value in [0,1].
func (p Profile) unit(t float64) float64 {
	if p.Mode == FadeCenter {
		return Fade(t)
	}

	return 1 - Fade(t)
}

// RadiusAt returns the sample radius at curve parameter t.
func (p Profile) RadiusAt(t float64) float64 { return p.Radius.At(p.unit(t)) }

// OpacityAt returns the sample opacity at curve parameter t.
func (p Profile) OpacityAt(t float64) float64 { return p.Opacity.At(p.unit(t)) }
