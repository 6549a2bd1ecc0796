package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A5-Website/atom-5-nexus/animation"
	"github.com/A5-Website/atom-5-nexus/builder"
	"github.com/A5-Website/atom-5-nexus/core"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/propagation"
	"github.com/A5-Website/atom-5-nexus/render"
	"github.com/A5-Website/atom-5-nexus/scene"
)

// counting records frames; failWith makes Render fail.
type counting struct {
	frames   int
	failWith error
	panics   bool
	closed   bool
}


func (c *counting) Render(animation.Frame) error {
	if c.panics {
		panic("surface lost")
	}
	if c.failWith != nil {
		return c.failWith
	}
	c.frames++
	return nil
}

func (c *counting) Close() error { c.closed = true; return nil }

func TestGuard_FactoryFailureUsesFallback(t *testing.T) {
	fb := &counting{}
	reg := metrics.NewRegistry()
	g := render.NewGuard(func() (render.Renderer, error) {
		return nil, errors.New("no display")
	}, render.WithFallback(fb), render.WithGuardMetrics(reg))

	assert.True(t, g.FellBack())
	require.NoError(t, g.Render(animation.Frame{}))
	assert.Equal(t, 1, fb.frames)
}

func TestGuard_FactoryPanicUsesFallback(t *testing.T) {
	g := render.NewGuard(func() (render.Renderer, error) { panic("boom") })
	assert.True(t, g.FellBack())
	assert.NoError(t, g.Render(animation.Frame{}))
}

func TestGuard_SurfaceLossSwitchesOnce(t *testing.T) {
	primary := &counting{}
	fb := &counting{}
	g := render.NewGuard(func() (render.Renderer, error) { return primary, nil }, render.WithFallback(fb))

	require.NoError(t, g.Render(animation.Frame{}))
	assert.Equal(t, 1, primary.frames)
	assert.False(t, g.FellBack())

	primary.failWith = render.ErrSurfaceUnavailable
	require.NoError(t, g.Render(animation.Frame{}))
	assert.True(t, g.FellBack())
	assert.True(t, primary.closed)
	assert.Equal(t, 1, fb.frames)
}

func TestGuard_PanicInRender(t *testing.T) {
	primary := &counting{panics: true}
	g := render.NewGuard(func() (render.Renderer, error) { return primary, nil })
	assert.NoError(t, g.Render(animation.Frame{}))
	assert.True(t, g.FellBack())
}

func TestGuard_OtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("bad frame")
	primary := &counting{failWith: boom}
	g := render.NewGuard(func() (render.Renderer, error) { return primary, nil })
	assert.ErrorIs(t, g.Render(animation.Frame{}), boom)
	assert.False(t, g.FellBack())
}

func TestProjector(t *testing.T) {
	p := render.NewProjector(render.DefaultCamera, 800, 600)

	x, y, _, ok := p.Project(core.V(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	// y up in world space is up on screen
	_, yUp, _, ok := p.Project(core.V(0, 1, 0))
	require.True(t, ok)
	assert.Less(t, yUp, 300.0)

	// nearer points are larger
	_, _, far, _ := p.Project(core.V(0, 0, -5))
	_, _, near, _ := p.Project(core.V(0, 0, 5))
	assert.Greater(t, near, far)

	_, _, _, ok = p.Project(core.V(0, 0, 25))
	assert.False(t, ok, "behind the camera")
}

func sampleFrame(t *testing.T) animation.Frame {
	t.Helper()
	sc, err := scene.Build(scene.Params{
		Graph: builder.ProximityParams{
			NodeCount: 12, RegionHalfExtent: 5, MaxConnectionDistance: 6, MinConnections: 2, MaxConnections: 3,
		},
		Seed: 4,
	})
	require.NoError(t, err)
	d, err := scene.NewDriver(sc, scene.WithPropagation(propagation.WithFlowProbability(1)))
	require.NoError(t, err)
	for n := 0; n < 12; n++ {
		require.NoError(t, d.Trigger(n, scene.SourceAPI))
	}
	d.Step(0)
	return d.Step(0.4)
}

func TestSVG_Render(t *testing.T) {
	var buf bytes.Buffer
	r := render.NewSVG(&buf, 320, 240, render.DefaultCamera, render.DefaultSVGStyle)
	require.NoError(t, r.Render(sampleFrame(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, `filter id="glow"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))

	assert.ErrorIs(t, render.NewSVG(nil, 1, 1, render.DefaultCamera, render.DefaultSVGStyle).Render(animation.Frame{}),
		render.ErrSurfaceUnavailable)
}

func TestTerm_Render(t *testing.T) {
	term := render.NewTerm(60, 20, render.DefaultCamera, render.TermStyles{})
	require.NoError(t, term.Render(sampleFrame(t)))

	lines := strings.Split(term.View(), "\n")
	assert.Len(t, lines, 20)
	assert.Contains(t, term.View(), "o")

	require.NoError(t, term.Close())
	assert.ErrorIs(t, term.Render(animation.Frame{}), render.ErrSurfaceUnavailable)
}
