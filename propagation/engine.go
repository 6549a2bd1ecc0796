// engine.go: Engine and the BFS walker.

package propagation

import (
	"fmt"

	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/logging"
)

// queueItem pairs a node with its cascade depth.
type queueItem struct {
	id    int
	depth int
}

// walker encapsulates the mutable state of one Trigger call.
type walker struct {
	graph   *core.Graph
	opts    *Options
	now     float64
	batch   uint64
	queue   []queueItem
	visited []bool
	pulses  []Pulse
}

// Engine creates pulse batches. It is not safe for concurrent use: the RNG
// and batch counter advance on every Trigger.
type Engine struct {
	opts      Options
	window    float64
	adjusted  bool
	lastBatch uint64
}

// New resolves opts and computes the cleanup window.
//
// The window is max(TriggerDuration, MaxGenerations·StaggerInterval + Duration).
// When a configured TriggerDuration is shorter than that cover it is raised
// and a warning is logged; Adjusted then reports true.
func New(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	cover := float64(o.MaxGenerations)*o.StaggerInterval + o.Duration
	e := &Engine{opts: o, window: o.TriggerDuration}
	switch {
	case o.TriggerDuration == 0:
		e.window = cover
	case o.TriggerDuration < cover:
		e.window = cover
		e.adjusted = true
		o.Logger.Warn("trigger duration shorter than pulse lifetime; raised",
			logging.Component("propagation"),
			logging.Float64("configured", o.TriggerDuration),
			logging.Float64("window", cover),
			logging.Int("max_generations", o.MaxGenerations))
	}

	return e, nil
}

// Window is the cleanup delay applied to every batch.
func (e *Engine) Window() float64 { return e.window }

// Adjusted reports whether the configured trigger duration was raised.
func (e *Engine) Adjusted() bool { return e.adjusted }

// Options returns a copy of the resolved options.
func (e *Engine) Options() Options { return e.opts }

// Trigger runs one cascade from node at clock value now and returns the
// created pulses in BFS order. All pulses share a fresh batch id.
//
// For a node dequeued at depth d, every unvisited neighbour receives a
// pulse with probability FlowProbability. A created pulse has
// Generation = d+1 and StartTime = now + d·StaggerInterval. The neighbour is
// marked visited and is enqueued only while d+1 < MaxGenerations.
//
// Complexity: O(V + E) time, O(V) memory.
func (e *Engine) Trigger(g *core.Graph, node int, now float64) ([]Pulse, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasNode(node) {
		return nil, fmt.Errorf("propagation: Trigger(%d): %w", node, ErrNodeNotFound)
	}

	e.lastBatch++
	if e.opts.MaxGenerations == 0 || e.opts.FlowProbability == 0 {
		return nil, nil
	}
	w := &walker{
		graph:   g,
		opts:    &e.opts,
		now:     now,
		batch:   e.lastBatch,
		queue:   make([]queueItem, 0, g.NodeCount()),
		visited: make([]bool, g.NodeCount()),
	}

	w.visited[node] = true
	w.queue = append(w.queue, queueItem{id: node, depth: 0})
	w.loop()

	return w.pulses, nil
}

// loop processes the queue until empty.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		w.spread(item)
	}
}

// neighbors returns the traversal set of id.
func (w *walker) neighbors(id int) []int {
	var (
		nbrs []int
		err  error
	)
	if w.opts.FollowIncoming {
		nbrs, err = w.graph.Adjacent(id)
	} else {
		nbrs, err = w.graph.Neighbors(id)
	}
	if err != nil {
		// id came from the graph, so lookups cannot fail
		return nil
	}
	return nbrs
}

// spread draws a Bernoulli trial per unvisited neighbour of item.
func (w *walker) spread(item queueItem) {
	gen := item.depth + 1
	start := w.now + float64(item.depth)*w.opts.StaggerInterval

	for _, nbr := range w.neighbors(item.id) {
		if w.visited[nbr] {
			continue
		}
		if w.opts.FlowProbability < 1 && w.opts.Rand.Float64() >= w.opts.FlowProbability {
			continue
		}

		p := Pulse{
			Batch:      w.batch,
			Source:     item.id,
			Target:     nbr,
			StartTime:  start,
			Duration:   w.opts.Duration,
			Generation: gen,
		}
		w.pulses = append(w.pulses, p)
		w.opts.OnPulse(p)

		w.visited[nbr] = true
		if gen < w.opts.MaxGenerations {
			w.queue = append(w.queue, queueItem{id: nbr, depth: gen})
		}
	}
}
