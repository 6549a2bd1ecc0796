package animation

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"

	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/geometry"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/propagation"
)

// expiry schedules the removal of one trigger batch.
type expiry struct {
	at    float64
	batch uint64
}

// byDeadline orders expiries by time, then by batch id.
var byDeadline utils.Comparator = func(a, b interface{}) int {
	x, y := a.(expiry), b.(expiry)
	switch {
	case x.at < y.at:
		return -1
	case x.at > y.at:
		return 1
	case x.batch < y.batch:
		return -1
	case x.batch > y.batch:
		return 1
	default:
		return 0
	}
}

// Stats counts pulse lifecycle events since construction.
type Stats struct {
	Triggers uint64
	Created  uint64
	Expired  uint64
	Active   int
}

// State is the single owner of a scene's mutable animation state.
type State struct {
	graph  *core.Graph
	engine *propagation.Engine
	opts   Options
	log    logging.Logger

	clock  float64
	pulses []propagation.Pulse
	expiry *binaryheap.Heap
	phases []core.Vec3
	drift  []core.Vec3
	edges  []geometry.EdgeGeometry
	// ambient lists the edges carrying a looping glow, in g.Edges() order.
	ambient []core.Edge
	stats   Stats
}

// NewState binds g and eng and draws the drift phases of every node.
func NewState(g *core.Graph, eng *propagation.Engine, opts ...Option) (*State, error) {
	if g == nil || eng == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.HeadMode == HeadCurve && o.Curves == nil {
		return nil, ErrNeedCurves
	}

	n := g.NodeCount()
	s := &State{
		graph:  g,
		engine: eng,
		opts:   o,
		log:    o.Logger.With(logging.Component("animation")),
		expiry: binaryheap.NewWith(byDeadline),
		phases: make([]core.Vec3, n),
		drift:  make([]core.Vec3, n),
	}
	for i := range s.phases {
		s.phases[i] = core.Vec3{
			X: o.Rand.Float64() * 2 * math.Pi,
			Y: o.Rand.Float64() * 2 * math.Pi,
			Z: o.Rand.Float64() * 2 * math.Pi,
		}
	}
	if o.Curves != nil {
		s.edges = o.Curves.All()
	}
	if o.AmbientPeriod > 0 {
		s.ambient = g.Edges()
	}
	s.updateDrift()

	return s, nil
}

// Clock returns the current animation clock.
func (s *State) Clock() float64 { return s.clock }

// Stats returns lifecycle counters.
func (s *State) Stats() Stats {
	st := s.stats
	st.Active = len(s.pulses)
	return st
}

// Window returns the batch cleanup delay of the bound engine.
func (s *State) Window() float64 { return s.engine.Window() }

// ActivePulses returns a copy of the active pulse set.
func (s *State) ActivePulses() []propagation.Pulse {
	return append([]propagation.Pulse(nil), s.pulses...)
}

// PendingBatches returns the number of scheduled batch removals.
func (s *State) PendingBatches() int { return s.expiry.Size() }

// Trigger starts a cascade at node using the current clock and schedules
// the batch for removal at clock + Window(). A trigger that creates no
// pulses leaves the state unchanged apart from the trigger counter.
func (s *State) Trigger(node int) ([]propagation.Pulse, error) {
	pulses, err := s.engine.Trigger(s.graph, node, s.clock)
	if err != nil {
		return nil, fmt.Errorf("animation: Trigger: %w", err)
	}
	s.stats.Triggers++
	if len(pulses) == 0 {
		return nil, nil
	}

	s.pulses = append(s.pulses, pulses...)
	s.stats.Created += uint64(len(pulses))
	s.expiry.Push(expiry{at: s.clock + s.engine.Window(), batch: pulses[0].Batch})
	s.log.Debug("trigger",
		logging.Node(node),
		logging.Batch(pulses[0].Batch),
		logging.Count(len(pulses)))

	return pulses, nil
}

// Advance moves the clock to clock and recomputes node drift. The clock is
// monotonic: a smaller value returns ErrClockRegressed and changes nothing.
func (s *State) Advance(clock float64) error {
	if math.IsNaN(clock) || clock < s.clock {
		return fmt.Errorf("%w: %g < %g", ErrClockRegressed, clock, s.clock)
	}
	s.clock = clock
	s.updateDrift()
	return nil
}

// ExpirePulses removes every batch whose cleanup time is ≤ clock and returns
// the number of pulses removed.
func (s *State) ExpirePulses(clock float64) int {
	due := make(map[uint64]struct{})
	for {
		top, ok := s.expiry.Peek()
		if !ok || top.(expiry).at > clock {
			break
		}
		s.expiry.Pop()
		due[top.(expiry).batch] = struct{}{}
	}
	if len(due) == 0 {
		return 0
	}

	kept := s.pulses[:0]
	for _, p := range s.pulses {
		if _, gone := due[p.Batch]; !gone {
			kept = append(kept, p)
		}
	}
	removed := len(s.pulses) - len(kept)
	// clear the tail so dropped pulses are not retained
	for i := len(kept); i < len(s.pulses); i++ {
		s.pulses[i] = propagation.Pulse{}
	}
	s.pulses = kept
	s.stats.Expired += uint64(removed)

	return removed
}

// updateDrift recomputes A·sin(clock·ω + φ) per node and axis.
func (s *State) updateDrift() {
	a, w := s.opts.DriftAmplitude, s.opts.DriftFrequency
	if a == 0 {
		for i := range s.drift {
			s.drift[i] = core.Vec3{}
		}
		return
	}
	for i, ph := range s.phases {
		s.drift[i] = core.Vec3{
			X: a * math.Sin(s.clock*w.X+ph.X),
			Y: a * math.Sin(s.clock*w.Y+ph.Y),
			Z: a * math.Sin(s.clock*w.Z+ph.Z),
		}
	}
	if s.graph.Planar() {
		for i := range s.drift {
			s.drift[i].Z = 0
		}
	}
}

// Frame returns a snapshot of the current state.
func (s *State) Frame() Frame {
	f := Frame{
		Clock:  s.clock,
		Nodes:  make([]NodeState, s.graph.NodeCount()),
		Edges:  s.edges,
		Pulses: make([]PulseState, len(s.pulses), len(s.pulses)+len(s.ambient)),
	}
	for i := range f.Nodes {
		n, _ := s.graph.Node(i)
		f.Nodes[i] = NodeState{
			ID:       i,
			Position: n.Position.Add(s.drift[i]),
			Drift:    s.drift[i],
			Size:     n.Size,
		}
	}
	for i, p := range s.pulses {
		f.Pulses[i] = s.pulseState(p)
	}
	for i, e := range s.ambient {
		f.Pulses = append(f.Pulses, s.ambientState(i, e))
	}
	return f
}

// ambientState is the looping glow of the i-th edge at the current clock.
func (s *State) ambientState(i int, e core.Edge) PulseState {
	t := AmbientProgress(s.clock, i, s.opts.AmbientPeriod, s.opts.AmbientDelay)
	ps := PulseState{
		Pulse: propagation.Pulse{
			Source:    e.From,
			Target:    e.To,
			StartTime: s.clock - t*s.opts.AmbientPeriod,
			Duration:  s.opts.AmbientPeriod,
		},
		Phase:   Active,
		T:       t,
		Opacity: Brightness(Active, t, AmbientGlowFloor),
		Visible: true,
		Ambient: true,
	}
	ps.Head, ps.GlowA, ps.GlowB = s.along(e.From, e.To, t, s.opts.GlowLength/2)
	return ps
}

// pulseState derives head, glow and opacity of p at the current clock.
func (s *State) pulseState(p propagation.Pulse) PulseState {
	phase := PhaseAt(p, s.clock)
	t := p.Progress(s.clock)
	half := s.opts.GlowLength / 2

	ps := PulseState{
		Pulse:   p,
		Phase:   phase,
		T:       t,
		Opacity: Brightness(phase, t, s.opts.GlowFloor),
		Visible: phase == Active,
	}
	ps.Head, ps.GlowA, ps.GlowB = s.along(p.Source, p.Target, t, half)
	return ps
}

// along evaluates the edge source→target at t and at t±half.
func (s *State) along(src, dst int, t, half float64) (head, a, b core.Vec3) {
	if s.opts.HeadMode == HeadCurve {
		if c, err := s.opts.Curves.Curve(src, dst); err == nil {
			return c.Point(t), c.Point(t - half), c.Point(t + half)
		}
		// traversal against edge direction: walk the stored curve backwards
		if c, err := s.opts.Curves.Curve(dst, src); err == nil {
			return c.Point(1 - t), c.Point(1 - t + half), c.Point(1 - t - half)
		}
	}
	from, _ := s.graph.Position(src)
	to, _ := s.graph.Position(dst)
	a, b = geometry.GlowSegment(from, to, t, 2*half)
	return geometry.Lerp(from, to, t), a, b
}
