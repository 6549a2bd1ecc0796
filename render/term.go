package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/A5-Website/atom-5-nexus/animation"
)

// cell kinds, in increasing draw priority.
const (
	cellEmpty = iota
	cellEdge
	cellNode
	cellGlow
	cellHead
)

var cellGlyph = [...]rune{' ', '·', 'o', '*', '●'}

// TermStyles styles each cell kind of the terminal renderer.
type TermStyles struct {
	Edge lipgloss.Style
	Node lipgloss.Style
	Glow lipgloss.Style
	Head lipgloss.Style
}

// DefaultTermStyles renders dim edges and bright pulses.
func DefaultTermStyles() TermStyles {
	return TermStyles{
		Edge: lipgloss.NewStyle().Foreground(lipgloss.Color("#3a3a3a")),
		Node: lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		Glow: lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff")),
		Head: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true),
	}
}

// Term rasterises frames into a character grid. Terminal cells are about
// twice as tall as wide, so the projection uses a doubled vertical extent
// and every other row.
type Term struct {
	mu     sync.Mutex
	width  int
	height int
	proj   Projector
	styles TermStyles
	grid   [][]uint8
	view   string
}

// NewTerm creates a width×height character renderer.
func NewTerm(width, height int, cam Camera, styles TermStyles) *Term {
	t := &Term{styles: styles, proj: NewProjector(cam, 1, 1)}
	t.Resize(width, height, cam)
	return t
}

// Resize changes the grid dimensions.
func (t *Term) Resize(width, height int, cam Camera) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t.width, t.height = width, height
	t.proj = NewProjector(cam, width, height*2)
	t.grid = make([][]uint8, height)
	for i := range t.grid {
		t.grid[i] = make([]uint8, width)
	}
}

func (t *Term) plot(x, y float64, kind uint8) {
	cx, cy := int(x), int(y/2)
	if cx < 0 || cy < 0 || cx >= t.width || cy >= t.height {
		return
	}
	if t.grid[cy][cx] < kind {
		t.grid[cy][cx] = kind
	}
}

// Render rasterises f; View returns the result.
func (t *Term) Render(f animation.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.grid == nil {
		return ErrSurfaceUnavailable
	}
	for _, row := range t.grid {
		for i := range row {
			row[i] = cellEmpty
		}
	}

	for _, e := range f.Edges {
		for _, p := range e.Points {
			if x, y, _, ok := t.proj.Project(p); ok {
				t.plot(x, y, cellEdge)
			}
		}
	}
	for _, n := range f.Nodes {
		if x, y, _, ok := t.proj.Project(n.Position); ok {
			t.plot(x, y, cellNode)
		}
	}
	for _, p := range f.Pulses {
		if !p.Visible {
			continue
		}
		if x, y, _, ok := t.proj.Project(p.GlowA); ok {
			t.plot(x, y, cellGlow)
		}
		if x, y, _, ok := t.proj.Project(p.GlowB); ok {
			t.plot(x, y, cellGlow)
		}
		if x, y, _, ok := t.proj.Project(p.Head); ok {
			t.plot(x, y, cellHead)
		}
	}

	t.view = t.draw()
	return nil
}

// draw renders the grid, styling runs of equal cells together.
func (t *Term) draw() string {
	var b strings.Builder
	for r, row := range t.grid {
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i] == row[start] {
				continue
			}
			b.WriteString(t.styleRun(row[start], i-start))
			start = i
		}
		if r < len(t.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (t *Term) styleRun(kind uint8, n int) string {
	run := strings.Repeat(string(cellGlyph[kind]), n)
	switch kind {
	case cellEdge:
		return t.styles.Edge.Render(run)
	case cellNode:
		return t.styles.Node.Render(run)
	case cellGlow:
		return t.styles.Glow.Render(run)
	case cellHead:
		return t.styles.Head.Render(run)
	default:
		return run
	}
}

// View returns the last rendered grid.
func (t *Term) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Close releases the grid; later renders report ErrSurfaceUnavailable.
func (t *Term) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid = nil
	return nil
}
