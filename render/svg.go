package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/A5-Website/atom-5-nexus/animation"
)

// SVGStyle holds the colours of the SVG renderer.
type SVGStyle struct {
	Background string
	Edge       string
	Node       string
	Pulse      string
}

// DefaultSVGStyle is white on black, like the site background.
var DefaultSVGStyle = SVGStyle{
	Background: "#000000",
	Edge:       "#ffffff",
	Node:       "#ffffff",
	Pulse:      "#ffffff",
}

// SVG writes every frame as a standalone SVG document to w.
type SVG struct {
	w      io.Writer
	proj   Projector
	style  SVGStyle
	width  int
	height int
}

// NewSVG creates an SVG renderer for a width×height canvas.
func NewSVG(w io.Writer, width, height int, cam Camera, style SVGStyle) *SVG {
	return &SVG{
		w:      w,
		proj:   NewProjector(cam, width, height),
		style:  style,
		width:  width,
		height: height,
	}
}

// Render draws edges, nodes and visible pulses of f.
func (s *SVG) Render(f animation.Frame) error {
	if s.w == nil {
		return ErrSurfaceUnavailable
	}
	canvas := svg.New(s.w)
	canvas.Start(s.width, s.height)

	canvas.Def()
	canvas.Filter("glow")
	canvas.FeGaussianBlur(svg.Filterspec{In: "SourceGraphic", Result: "blur"}, 2, 2)
	canvas.FeMerge([]string{"blur", "SourceGraphic"})
	canvas.Fend()
	canvas.DefEnd()

	canvas.Rect(0, 0, s.width, s.height, "fill:"+s.style.Background)
	s.drawEdges(canvas, f)
	s.drawNodes(canvas, f)
	s.drawPulses(canvas, f)
	canvas.Text(8, s.height-8, fmt.Sprintf("t=%.2fs pulses=%d", f.Clock, len(f.VisiblePulses())),
		"fill:#666666;font-size:10px;font-family:monospace")

	canvas.End()
	return nil
}

// drawEdges draws every sampled edge segment with its mean profile opacity
// and radius.
func (s *SVG) drawEdges(canvas *svg.SVG, f animation.Frame) {
	canvas.Gstyle(fmt.Sprintf("stroke:%s;stroke-linecap:round;fill:none", s.style.Edge))
	for _, e := range f.Edges {
		for i := 0; i+1 < len(e.Points); i++ {
			x1, y1, k1, ok1 := s.proj.Project(e.Points[i])
			x2, y2, k2, ok2 := s.proj.Project(e.Points[i+1])
			if !ok1 || !ok2 {
				continue
			}
			alpha := (e.Opacities[i] + e.Opacities[i+1]) / 2
			width := math.Max(0.5, (e.Radii[i]*k1+e.Radii[i+1]*k2))
			canvas.Line(round(x1), round(y1), round(x2), round(y2),
				fmt.Sprintf("stroke-opacity:%.3f;stroke-width:%.2f", alpha, width))
		}
	}
	canvas.Gend()
}

func (s *SVG) drawNodes(canvas *svg.SVG, f animation.Frame) {
	for _, n := range f.Nodes {
		x, y, k, ok := s.proj.Project(n.Position)
		if !ok {
			continue
		}
		r := int(math.Max(1, math.Round(n.Size*k)))
		canvas.Circle(round(x), round(y), r, "fill:"+s.style.Node+";fill-opacity:0.9")
	}
}

func (s *SVG) drawPulses(canvas *svg.SVG, f animation.Frame) {
	for _, p := range f.Pulses {
		if !p.Visible {
			continue
		}
		xa, ya, _, okA := s.proj.Project(p.GlowA)
		xb, yb, k, okB := s.proj.Project(p.GlowB)
		if !okA || !okB {
			continue
		}
		canvas.Line(round(xa), round(ya), round(xb), round(yb),
			fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f;stroke-linecap:round;filter:url(#glow)",
				s.style.Pulse, p.Opacity, math.Max(1.5, 0.04*k)))
	}
}

// Close is a no-op; the caller owns the writer.
func (s *SVG) Close() error { return nil }

func round(v float64) int { return int(math.Round(v)) }
