package animation

import (
	"math"

	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/geometry"
	"github.com/A5-Website/atom-5-nexus/propagation"
)

// Phase is the clock-derived lifecycle stage of a pulse.
type Phase int

const (
	// Scheduled: clock < start.
	Scheduled Phase = iota
	// Active: start ≤ clock < start+duration.
	Active
	// Expired: clock ≥ start+duration.
	Expired
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Scheduled:
		return "scheduled"
	case Active:
		return "active"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// MarshalText lets phases appear as words in JSON frames.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PhaseAt derives the phase of p at clock.
func PhaseAt(p propagation.Pulse, clock float64) Phase {
	switch {
	case clock < p.StartTime:
		return Scheduled
	case clock < p.End():
		return Active
	default:
		return Expired
	}
}

// Brightness is floor + (1−floor)·sin(tπ) for an Active pulse and 0 otherwise.
func Brightness(phase Phase, t, floor float64) float64 {
	if phase != Active {
		return 0
	}
	return floor + (1-floor)*math.Sin(t*math.Pi)
}

// AmbientProgress is ((clock + index·delay) mod period)/period, in [0,1).
func AmbientProgress(clock float64, index int, period, delay float64) float64 {
	if period <= 0 {
		return 0
	}
	return math.Mod(clock+float64(index)*delay, period) / period
}

// NodeState is a node as drawn in one frame.
type NodeState struct {
	ID       int       `json:"id"`
	Position core.Vec3 `json:"position"`
	Drift    core.Vec3 `json:"drift"`
	Size     float64   `json:"size"`
}

// PulseState is the render state of one pulse in one frame.
type PulseState struct {
	propagation.Pulse
	Phase   Phase     `json:"phase"`
	T       float64   `json:"t"`
	Head    core.Vec3 `json:"head"`
	GlowA   core.Vec3 `json:"glow_a"`
	GlowB   core.Vec3 `json:"glow_b"`
	Opacity float64   `json:"opacity"`
	Visible bool      `json:"visible"`
	// Ambient marks a looping background glow rather than a cascade pulse.
	Ambient bool `json:"ambient,omitempty"`
}

// Frame is an immutable per-frame snapshot. Edges is shared between frames
// of the same scene and must not be modified. It is static, so the wire
// form leaves it out; clients read edge geometry once from the scene.
type Frame struct {
	Clock  float64                 `json:"clock"`
	Nodes  []NodeState             `json:"nodes"`
	Edges  []geometry.EdgeGeometry `json:"-"`
	Pulses []PulseState            `json:"pulses"`
}

// VisiblePulses returns only the pulses with Visible set.
func (f Frame) VisiblePulses() []PulseState {
	out := make([]PulseState, 0, len(f.Pulses))
	for _, p := range f.Pulses {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}
