package scene

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/A5-Website/atom-5-nexus/animation"
	"github.com/A5-Website/atom-5-nexus/dfs"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/propagation"
)

// DefaultFrameInterval is one tick at roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Trigger sources used as metric labels.
const (
	SourceAPI         = "api"
	SourceSpontaneous = "spontaneous"
	SourcePointer     = "pointer"
)

type pendingTrigger struct {
	node   int
	source string
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Driver) { d.log = logging.OrNop(l) }
}

// WithMetrics publishes driver activity to r.
func WithMetrics(r *metrics.Registry) Option {
	return func(d *Driver) { d.metrics = r }
}

// WithFrameInterval sets the tick period used by Run.
func WithFrameInterval(iv time.Duration) Option {
	return func(d *Driver) {
		if iv > 0 {
			d.interval = iv
		}
	}
}

// WithPropagation passes options to the propagation engine.
func WithPropagation(opts ...propagation.Option) Option {
	return func(d *Driver) { d.popts = append(d.popts, opts...) }
}

// WithAnimation passes options to the animation state.
func WithAnimation(opts ...animation.Option) Option {
	return func(d *Driver) { d.aopts = append(d.aopts, opts...) }
}

// WithClock replaces time.Now as the wall clock of Run.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// Driver serialises every mutation of one scene's animation state.
//
// External triggers are queued and applied at the start of the next tick,
// so a frame never observes a partially applied trigger. Frames handed to
// subscribers are snapshots and are never modified afterwards.
type Driver struct {
	scene    *Scene
	log      logging.Logger
	metrics  *metrics.Registry
	interval time.Duration
	now      func() time.Time
	popts    []propagation.Option
	aopts    []animation.Option

	mu      sync.Mutex
	state   *animation.State
	pending []pendingTrigger
	latest  animation.Frame
	subs    map[int]chan animation.Frame
	nextSub int
	closed  bool
}

// NewDriver wires the propagation engine and animation state for sc.
// Curves of sc are always attached to the animation state.
func NewDriver(sc *Scene, opts ...Option) (*Driver, error) {
	if sc == nil {
		return nil, fmt.Errorf("scene: NewDriver: nil scene")
	}
	d := &Driver{
		scene:    sc,
		log:      logging.Nop(),
		interval: DefaultFrameInterval,
		now:      time.Now,
		subs:     make(map[int]chan animation.Frame),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(logging.Component("scene"), logging.String("scene", sc.ID.String()))

	popts := append([]propagation.Option{
		propagation.WithSeed(sc.Seed + 2),
		propagation.WithLogger(d.log),
	}, d.popts...)
	eng, err := propagation.New(popts...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	aopts := append([]animation.Option{
		animation.WithSeed(sc.Seed + 3),
		animation.WithCurves(sc.Curves),
		animation.WithLogger(d.log),
	}, d.aopts...)
	st, err := animation.NewState(sc.Graph, eng, aopts...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	d.state = st
	d.latest = st.Frame()

	if d.metrics != nil {
		d.metrics.SetScene(sc.Graph.NodeCount(), sc.Graph.EdgeCount())
	}
	comps, _ := dfs.Components(sc.Graph)
	d.log.Info("scene ready",
		logging.Int("nodes", sc.Graph.NodeCount()),
		logging.Int("edges", sc.Graph.EdgeCount()),
		logging.Int("components", len(comps)),
		logging.Float64("window", eng.Window()))

	return d, nil
}

// Scene returns the static scene.
func (d *Driver) Scene() *Scene { return d.scene }

// NodeCount returns the number of nodes that can be triggered.
func (d *Driver) NodeCount() int { return d.scene.Graph.NodeCount() }

// Trigger queues a cascade at node for the next tick.
func (d *Driver) Trigger(node int, source string) error {
	if !d.scene.Graph.HasNode(node) {
		return fmt.Errorf("scene: Trigger(%d): %w", node, ErrNodeNotFound)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.pending = append(d.pending, pendingTrigger{node: node, source: source})
	return nil
}

// Step runs one tick at clock: advance, apply queued triggers, expire due
// batches, publish the frame. It is what Run calls on every tick and what
// tests call directly.
func (d *Driver) Step(clock float64) animation.Frame {
	started := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.state.Advance(clock); err != nil {
		d.log.Warn("clock rejected", logging.Err(err))
	}
	for _, t := range d.pending {
		pulses, err := d.state.Trigger(t.node)
		if err != nil {
			d.log.Error("trigger failed", logging.Node(t.node), logging.Err(err))
			continue
		}
		if d.metrics != nil {
			d.metrics.RecordTrigger(t.source, len(pulses))
		}
	}
	d.pending = d.pending[:0]
	expired := d.state.ExpirePulses(d.state.Clock())

	frame := d.state.Frame()
	d.latest = frame
	for _, ch := range d.subs {
		select {
		case ch <- frame:
		default:
			// slow subscriber: drop this frame
		}
	}
	if d.metrics != nil {
		d.metrics.RecordFrame(time.Since(started), d.state.Stats().Active, expired)
	}

	return frame
}

// Latest returns the most recent frame.
func (d *Driver) Latest() animation.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

// Stats returns the animation counters.
func (d *Driver) Stats() animation.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Stats()
}

// Subscribe returns a channel receiving every published frame and a cancel
// function. Frames are dropped for a subscriber whose buffer is full.
func (d *Driver) Subscribe(buffer int) (<-chan animation.Frame, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan animation.Frame, buffer)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	d.setSubscribers()
	d.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
				d.setSubscribers()
			}
		})
	}
}

// setSubscribers must be called with mu held.
func (d *Driver) setSubscribers() {
	if d.metrics != nil {
		d.metrics.FrameSubscribers.Set(float64(len(d.subs)))
	}
}

// Run ticks every frame interval until ctx is done, then closes all
// subscriptions. The animation clock is wall time since Run started.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	start := d.now()

	d.log.Info("driver started", logging.Duration("interval", d.interval))
	for {
		select {
		case <-ticker.C:
			d.Step(d.now().Sub(start).Seconds())
		case <-ctx.Done():
			d.close()
			d.log.Info("driver stopped")
			return nil
		}
	}
}

func (d *Driver) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for id, ch := range d.subs {
		close(ch)
		delete(d.subs, id)
	}
	d.setSubscribers()
}
