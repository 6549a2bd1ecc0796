// Package render adapts animation frames to drawing surfaces.
//
// A Renderer draws one frame at a time. Surfaces can disappear (a terminal
// that cannot be opened, a websocket peer that went away), so hosts wrap
// renderers in a Guard: the first time the surface is reported unavailable,
// the Guard switches to a fallback renderer and the host keeps running.
package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/A5-Website/atom-5-nexus/animation"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/metrics"
)

// ErrSurfaceUnavailable reports that the drawing surface cannot be used.
var ErrSurfaceUnavailable = errors.New("render: surface unavailable")

// Renderer draws frames.
type Renderer interface {
	Render(f animation.Frame) error
	Close() error
}

// Factory creates a Renderer, typically opening its surface.
type Factory func() (Renderer, error)

// Discard drops every frame. It is the default fallback.
type Discard struct{}

func (Discard) Render(animation.Frame) error { return nil }
func (Discard) Close() error                 { return nil }

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithFallback sets the renderer used after the surface fails.
func WithFallback(r Renderer) GuardOption {
	return func(g *Guard) {
		if r != nil {
			g.fallback = r
		}
	}
}

// WithGuardLogger sets the logger used for the fallback notice.
func WithGuardLogger(l logging.Logger) GuardOption {
	return func(g *Guard) { g.log = logging.OrNop(l) }
}

// WithGuardMetrics counts fallbacks in r.
func WithGuardMetrics(r *metrics.Registry) GuardOption {
	return func(g *Guard) { g.metrics = r }
}

// Guard owns a primary renderer and falls back when its surface fails.
//
// A factory error, an ErrSurfaceUnavailable from Render, or a panic inside
// Render all switch the Guard to its fallback permanently. Other Render
// errors are returned to the caller unchanged.
type Guard struct {
	mu       sync.Mutex
	active   Renderer
	primary  Renderer
	fallback Renderer
	fellBack bool
	log      logging.Logger
	metrics  *metrics.Registry
}

// NewGuard runs factory and returns a Guard that is already on its fallback
// when the factory fails or panics.
func NewGuard(factory Factory, opts ...GuardOption) *Guard {
	g := &Guard{fallback: Discard{}, log: logging.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logging.Component("render"))

	r, err := safeOpen(factory)
	if err != nil {
		g.switchToFallback(err)
		return g
	}
	g.primary, g.active = r, r
	return g
}

func safeOpen(factory Factory) (r Renderer, err error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrSurfaceUnavailable)
	}
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%w: factory panic: %v", ErrSurfaceUnavailable, p)
		}
	}()
	r, err = factory()
	if err == nil && r == nil {
		err = fmt.Errorf("%w: factory returned nil", ErrSurfaceUnavailable)
	}
	return r, err
}

func safeRender(r Renderer, f animation.Frame) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: render panic: %v", ErrSurfaceUnavailable, p)
		}
	}()
	return r.Render(f)
}

// switchToFallback must be called with mu held (or before g is shared).
func (g *Guard) switchToFallback(cause error) {
	if g.fellBack {
		return
	}
	g.fellBack = true
	g.active = g.fallback
	if g.primary != nil {
		_ = g.primary.Close()
	}
	g.log.Warn("surface unavailable, using fallback renderer", logging.Err(cause))
	if g.metrics != nil {
		g.metrics.RenderFallbacksTotal.Inc()
	}
}

// Render draws f on the active renderer.
func (g *Guard) Render(f animation.Frame) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := safeRender(g.active, f)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSurfaceUnavailable) && !g.fellBack {
		g.switchToFallback(err)
		return safeRender(g.active, f)
	}
	return err
}

// FellBack reports whether the Guard is using its fallback.
func (g *Guard) FellBack() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fellBack
}

// Close closes the active renderer.
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active.Close()
}
