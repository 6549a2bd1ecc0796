// types.go: options, sentinel errors and the Pulse type.

package propagation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/A5-Website/atom-5-nexus/logging"
)

// Sentinel errors for propagation.
var (
	// ErrNodeNotFound is returned when the trigger node is outside the graph.
	ErrNodeNotFound = errors.New("propagation: node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("propagation: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("propagation: invalid option supplied")
)

// Defaults taken from the site background: one cascade hop every 80 ms and
// a 1.5 s travel time per edge.
const (
	DefaultFlowProbability = 0.7
	DefaultMaxGenerations  = 3
	DefaultStaggerInterval = 0.08
	DefaultDuration        = 1.5
)

// Pulse is a transient signal travelling Source→Target.
// Times are in seconds on the animation clock.
type Pulse struct {
	Batch      uint64  `json:"batch"`
	Source     int     `json:"source"`
	Target     int     `json:"target"`
	StartTime  float64 `json:"start"`
	Duration   float64 `json:"duration"`
	Generation int     `json:"generation"`
}

// End is the clock value at which the pulse stops being visible.
func (p Pulse) End() float64 { return p.StartTime + p.Duration }

// Progress returns (clock − start)/duration clamped to [0,1].
func (p Pulse) Progress(clock float64) float64 {
	if p.Duration <= 0 {
		if clock >= p.StartTime {
			return 1
		}
		return 0
	}
	return math.Min(1, math.Max(0, (clock-p.StartTime)/p.Duration))
}

// Visible reports start ≤ clock < start+duration.
func (p Pulse) Visible(clock float64) bool {
	return clock >= p.StartTime && clock < p.End()
}

// Option configures an Engine via functional arguments.
// If an Option is invalid (e.g. probability outside [0,1]), it is recorded
// internally and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds parameters and callbacks of an Engine.
type Options struct {
	// FlowProbability is the independent chance that an edge carries a pulse.
	FlowProbability float64

	// MaxGenerations bounds the cascade depth. 0 disables propagation.
	MaxGenerations int

	// StaggerInterval delays each generation relative to the previous one.
	StaggerInterval float64

	// Duration is the per-pulse travel time.
	Duration float64

	// TriggerDuration is the configured batch lifetime before cleanup.
	// 0 means "derive from the generation cover".
	TriggerDuration float64

	// FollowIncoming lets a cascade travel edges in both directions.
	FollowIncoming bool

	// OnPulse is called for every pulse created, in creation order.
	OnPulse func(Pulse)

	// Rand drives the Bernoulli draws.
	Rand *rand.Rand

	// Logger receives configuration warnings.
	Logger logging.Logger

	err error
}

// DefaultOptions returns the site defaults with a time-independent seed of 1
// and a no-op logger.
func DefaultOptions() Options {
	return Options{
		FlowProbability: DefaultFlowProbability,
		MaxGenerations:  DefaultMaxGenerations,
		StaggerInterval: DefaultStaggerInterval,
		Duration:        DefaultDuration,
		OnPulse:         func(Pulse) {},
		Rand:            rand.New(rand.NewSource(1)),
		Logger:          logging.Nop(),
	}
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// WithFlowProbability sets p ∈ [0,1].
func WithFlowProbability(p float64) Option {
	return func(o *Options) {
		if math.IsNaN(p) || p < 0 || p > 1 {
			o.fail("flow probability must be in [0,1] (%g)", p)
			return
		}
		o.FlowProbability = p
	}
}

// WithMaxGenerations sets the cascade depth bound.
//
//	g > 0: at most g generations
//	g == 0: triggers create no pulses
//	g < 0: invalid option → ErrOptionViolation
func WithMaxGenerations(g int) Option {
	return func(o *Options) {
		if g < 0 {
			o.fail("max generations cannot be negative (%d)", g)
			return
		}
		o.MaxGenerations = g
	}
}

// WithStaggerInterval sets the per-generation delay in seconds.
func WithStaggerInterval(s float64) Option {
	return func(o *Options) {
		if !finiteNonNegative(s) {
			o.fail("stagger interval must be finite and ≥ 0 (%g)", s)
			return
		}
		o.StaggerInterval = s
	}
}

// WithDuration sets the per-pulse travel time; it must be > 0.
func WithDuration(d float64) Option {
	return func(o *Options) {
		if !finiteNonNegative(d) || d == 0 {
			o.fail("duration must be finite and > 0 (%g)", d)
			return
		}
		o.Duration = d
	}
}

// WithTriggerDuration sets the batch cleanup window in seconds.
func WithTriggerDuration(d float64) Option {
	return func(o *Options) {
		if !finiteNonNegative(d) {
			o.fail("trigger duration must be finite and ≥ 0 (%g)", d)
			return
		}
		o.TriggerDuration = d
	}
}

// WithFollowIncoming makes cascades ignore edge direction: a pulse may run
// Target→Source of a stored edge, so only g.HasEdge(src, tgt) ||
// g.HasEdge(tgt, src) holds for its endpoints.
func WithFollowIncoming() Option {
	return func(o *Options) { o.FollowIncoming = true }
}

// WithOnPulse registers a callback for every created pulse.
func WithOnPulse(fn func(Pulse)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPulse = fn
		}
	}
}

// WithRand supplies the Bernoulli RNG. A nil r is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed seeds a fresh Bernoulli RNG.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the warning sink. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
