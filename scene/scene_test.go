package scene_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/propagation"
	"github.com/A5-Website/atom-5-nexus/scene"
)

// completeParams yields a 10-node complete graph.
var completeParams = scene.Params{
	Graph: builder.ProximityParams{
		NodeCount:             10,
		RegionHalfExtent:      7.5,
		MaxConnectionDistance: 100,
		MinConnections:        9,
		MaxConnections:        9,
	},
	Seed: 21,
}

func newDriver(t *testing.T, opts ...scene.Option) *scene.Driver {
	t.Helper()
	sc, err := scene.Build(completeParams)
	require.NoError(t, err)
	opts = append([]scene.Option{scene.WithPropagation(
		propagation.WithFlowProbability(1),
		propagation.WithMaxGenerations(1),
		propagation.WithDuration(1),
	)}, opts...)
	d, err := scene.NewDriver(sc, opts...)
	require.NoError(t, err)
	return d
}

func TestBuild_DeterministicPerSeed(t *testing.T) {
	a, err := scene.Build(completeParams)
	require.NoError(t, err)
	b, err := scene.Build(completeParams)
	require.NoError(t, err)

	assert.Equal(t, a.Graph.Positions(), b.Graph.Positions())
	assert.Equal(t, a.Curves.All(), b.Curves.All())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 90, a.Graph.EdgeCount())

	bad := completeParams
	bad.Graph.MinConnections = 10
	_, err = scene.Build(bad)
	assert.ErrorIs(t, err, builder.ErrBadCapRange)
}

func TestSnapshot_JSON(t *testing.T) {
	sc, err := scene.Build(completeParams)
	require.NoError(t, err)

	raw, err := json.Marshal(sc.Snapshot())
	require.NoError(t, err)
	var decoded struct {
		ID    string            `json:"id"`
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, sc.ID.String(), decoded.ID)
	assert.Len(t, decoded.Nodes, 10)
	assert.Len(t, decoded.Edges, 90)

	comps := sc.Snapshot().Components
	require.Len(t, comps, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, comps[0])
	assert.Empty(t, sc.Snapshot().Isolated)
	assert.Contains(t, string(raw), `"isolated":[]`)
}

func TestSnapshot_IsolatedAndReachable(t *testing.T) {
	sc, err := scene.Build(scene.Params{Graph: builder.ProximityParams{
		NodeCount: 4, RegionHalfExtent: 1, MaxConnectionDistance: 0, MinConnections: 1, MaxConnections: 2,
	}, Seed: 5})
	require.NoError(t, err)
	snap := sc.Snapshot()
	assert.Equal(t, []int{0, 1, 2, 3}, snap.Isolated)
	assert.Len(t, snap.Components, 4)

	order, err := sc.Reachable(2, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, order)

	_, err = sc.Reachable(4, true)
	assert.ErrorIs(t, err, scene.ErrNodeNotFound)

	full, err := scene.Build(completeParams)
	require.NoError(t, err)
	order, err = full.Reachable(3, false)
	require.NoError(t, err)
	require.Len(t, order, 10)
	assert.Equal(t, 3, order[0])
	order, err = full.Reachable(3, true)
	require.NoError(t, err)
	assert.Len(t, order, 10)
}

func TestDriver_TriggersApplyAtNextTick(t *testing.T) {
	reg := metrics.NewRegistry()
	d := newDriver(t, scene.WithMetrics(reg))

	require.NoError(t, d.Trigger(0, scene.SourceAPI))
	assert.Empty(t, d.Latest().Pulses, "queued trigger is not visible before the tick")

	f := d.Step(0.5)
	require.Len(t, f.Pulses, 9)
	for _, p := range f.Pulses {
		assert.Equal(t, 0.5, p.StartTime)
		assert.Equal(t, 1, p.Generation)
	}
	assert.Equal(t, f, d.Latest())

	c, err := reg.TriggersTotal.GetMetricWithLabelValues(scene.SourceAPI)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
}

func TestDriver_ExpiresBatches(t *testing.T) {
	d := newDriver(t)
	require.NoError(t, d.Trigger(3, scene.SourceAPI))
	d.Step(0)

	// window = 1·0.08 + 1
	assert.Len(t, d.Step(1.0).Pulses, 9)
	assert.Empty(t, d.Step(1.1).Pulses)
	st := d.Stats()
	assert.Equal(t, uint64(9), st.Created)
	assert.Equal(t, uint64(9), st.Expired)
}

func TestDriver_TriggerUnknownNode(t *testing.T) {
	d := newDriver(t)
	assert.ErrorIs(t, d.Trigger(10, scene.SourceAPI), scene.ErrNodeNotFound)
	assert.ErrorIs(t, d.Trigger(-1, scene.SourceAPI), scene.ErrNodeNotFound)
}

func TestDriver_Subscribe(t *testing.T) {
	d := newDriver(t)
	ch, cancel := d.Subscribe(2)

	d.Step(0.1)
	f := <-ch
	assert.Equal(t, 0.1, f.Clock)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestDriver_RunStopsOnCancel(t *testing.T) {
	d := newDriver(t, scene.WithFrameInterval(time.Millisecond))
	ch, _ := d.Subscribe(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame published")
	}
	cancel()
	require.NoError(t, <-done)

	for range ch {
		// drain until closed
	}
	assert.ErrorIs(t, d.Trigger(0, scene.SourceAPI), scene.ErrClosed)

	late, cancelLate := d.Subscribe(1)
	_, open := <-late
	assert.False(t, open, "subscriptions after shutdown are closed")
	cancelLate()
}

type recorder struct {
	n     int
	nodes []int
}

func (r *recorder) Trigger(node int, source string) error {
	r.nodes = append(r.nodes, node)
	return nil
}

func (r *recorder) NodeCount() int { return r.n }

func TestSpontaneous_Fire(t *testing.T) {
	a := &recorder{n: 100}
	b := &recorder{n: 100}
	sa := scene.NewSpontaneous(a, time.Second, 5, nil)
	sb := scene.NewSpontaneous(b, time.Second, 5, nil)
	for i := 0; i < 20; i++ {
		na, err := sa.Fire()
		require.NoError(t, err)
		_, err = sb.Fire()
		require.NoError(t, err)
		assert.True(t, na >= 0 && na < 100)
	}
	assert.Equal(t, a.nodes, b.nodes)

	empty := scene.NewSpontaneous(&recorder{}, time.Second, 1, nil)
	n, err := empty.Fire()
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestSpontaneous_RunQueuesOnDriver(t *testing.T) {
	d := newDriver(t)
	sp := scene.NewSpontaneous(d, time.Millisecond, 9, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, sp.Run(ctx))

	d.Step(0)
	assert.Positive(t, d.Stats().Triggers)
}
