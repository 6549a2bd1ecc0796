package animation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/geometry"
	"github.com/A5-Website/atom-5-nexus/logging"
)

// HeadMode selects how a pulse head follows its edge.
type HeadMode int

const (
	// HeadStraight interpolates the straight source→target segment.
	HeadStraight HeadMode = iota
	// HeadCurve follows the edge's Bézier curve.
	HeadCurve
)

const (
	// DefaultGlowLength is the parametric length of a pulse's glowing segment.
	DefaultGlowLength = 0.08
	// DefaultDriftAmplitude is the per-axis drift in world units.
	DefaultDriftAmplitude = 0.05
	// AmbientGlowFloor is the opacity an ambient glow never drops below.
	AmbientGlowFloor = 0.3
)

// DefaultDriftFrequency holds the angular frequency of each drift axis in rad/s.
var DefaultDriftFrequency = core.Vec3{X: 0.5, Y: 0.7, Z: 0.3}

// Option configures a State.
type Option func(*Options)

// Options holds the tunables of a State.
type Options struct {
	// GlowFloor is the minimum opacity of an Active pulse.
	GlowFloor      float64
	GlowLength     float64
	DriftAmplitude float64
	DriftFrequency core.Vec3
	HeadMode       HeadMode
	// AmbientPeriod > 0 keeps one looping glow on every edge; edge i runs
	// AmbientDelay·i seconds ahead of edge 0.
	AmbientPeriod float64
	AmbientDelay  float64
	// Curves supplies edge curves for HeadCurve and for Frame edge geometry.
	Curves *geometry.Builder
	Rand   *rand.Rand
	Logger logging.Logger

	err error
}

// DefaultOptions returns straight heads, no glow floor and gentle drift.
func DefaultOptions() Options {
	return Options{
		GlowLength:     DefaultGlowLength,
		DriftAmplitude: DefaultDriftAmplitude,
		DriftFrequency: DefaultDriftFrequency,
		HeadMode:       HeadStraight,
		Rand:           rand.New(rand.NewSource(1)),
		Logger:         logging.Nop(),
	}
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func unit(v float64) bool { return !math.IsNaN(v) && v >= 0 && v <= 1 }

// WithGlowFloor sets the minimum Active opacity, f ∈ [0,1].
// The site background used 0.3.
func WithGlowFloor(f float64) Option {
	return func(o *Options) {
		if !unit(f) {
			o.fail("glow floor must be in [0,1] (%g)", f)
			return
		}
		o.GlowFloor = f
	}
}

// WithGlowLength sets the glow segment length, l ∈ [0,1].
func WithGlowLength(l float64) Option {
	return func(o *Options) {
		if !unit(l) {
			o.fail("glow length must be in [0,1] (%g)", l)
			return
		}
		o.GlowLength = l
	}
}

// WithDrift sets the drift amplitude and per-axis angular frequencies.
// Amplitude 0 disables drift.
func WithDrift(amplitude float64, freq core.Vec3) Option {
	return func(o *Options) {
		if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) || amplitude < 0 || !freq.IsFinite() {
			o.fail("drift amplitude %g / frequency %+v", amplitude, freq)
			return
		}
		o.DriftAmplitude, o.DriftFrequency = amplitude, freq
	}
}

// WithAmbientFlow loops a glow along every edge with the given period,
// offsetting edge i by i·delayPerEdge. Period 0 disables it.
func WithAmbientFlow(period, delayPerEdge float64) Option {
	return func(o *Options) {
		if !finite(period) || !finite(delayPerEdge) || period < 0 || delayPerEdge < 0 {
			o.fail("ambient flow period %g / delay %g", period, delayPerEdge)
			return
		}
		o.AmbientPeriod, o.AmbientDelay = period, delayPerEdge
	}
}

// WithCurves attaches the edge curve cache. HeadCurve requires it.
func WithCurves(b *geometry.Builder) Option {
	return func(o *Options) { o.Curves = b }
}

// WithHeadMode selects straight or curved pulse heads.
func WithHeadMode(m HeadMode) Option {
	return func(o *Options) {
		if m != HeadStraight && m != HeadCurve {
			o.fail("unknown head mode %d", m)
			return
		}
		o.HeadMode = m
	}
}

// WithSeed seeds the drift phase RNG.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the drift phase RNG. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
