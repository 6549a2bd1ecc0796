package render

import (
	"math"

	"github.com/A5-Website/atom-5-nexus/core"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	// Distance from the origin along +Z.
	Distance float64
	// FOV is the vertical field of view in degrees.
	FOV float64
}

// DefaultCamera matches the site background: z = 20, 60° field of view.
var DefaultCamera = Camera{Distance: 20, FOV: 60}

// nearPlane is the minimum depth in front of the camera that is drawn.
const nearPlane = 0.1

// Projector maps world points to surface coordinates.
type Projector struct {
	cam           Camera
	width, height float64
	focal         float64
}

// NewProjector builds a projector for a width×height surface.
func NewProjector(cam Camera, width, height int) Projector {
	if cam.Distance <= 0 {
		cam.Distance = DefaultCamera.Distance
	}
	if cam.FOV <= 0 || cam.FOV >= 180 {
		cam.FOV = DefaultCamera.FOV
	}
	h := float64(height)
	return Projector{
		cam:    cam,
		width:  float64(width),
		height: h,
		focal:  (h / 2) / math.Tan(cam.FOV*math.Pi/360),
	}
}

// Project returns the surface position of v and the perspective scale at
// that depth. ok is false for points behind the near plane.
func (p Projector) Project(v core.Vec3) (x, y, scale float64, ok bool) {
	depth := p.cam.Distance - v.Z
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	scale = p.focal / depth
	return p.width/2 + v.X*scale, p.height/2 - v.Y*scale, scale, true
}

// Size returns the surface dimensions.
func (p Projector) Size() (width, height float64) { return p.width, p.height }
