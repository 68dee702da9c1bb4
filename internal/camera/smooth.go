package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"
)

// ZoomSmoother eases wheel zoom: wheel steps move a target distance and
// each frame a critically damped spring moves the camera toward it.
type ZoomSmoother struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
}

// NewZoomSmoother returns a smoother stepped at fps frames per second.
func NewZoomSmoother(fps int) *ZoomSmoother {
	return &ZoomSmoother{
		// frequency 8, damping 1: settles in a fraction of a second without overshoot
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 8.0, 1.0),
	}
}

// Zoom queues a relative zoom of delta wheel units (120 per notch), with the
// same factor as Camera.Zoom.
func (z *ZoomSmoother) Zoom(c *Camera, delta float64) {
	if !z.active {
		z.pos = c.ZoomValue()
		z.target = z.pos
		z.vel = 0
		z.active = true
	}
	z.target *= gomath.Pow(0.9, delta/120.0)
}

// Update advances the spring one frame and applies the distance to c.
// It reports whether the zoom is still moving.
func (z *ZoomSmoother) Update(c *Camera) bool {
	if !z.active {
		return false
	}
	z.pos, z.vel = z.spring.Update(z.pos, z.vel, z.target)

	eps := 1e-4 * z.target
	if gomath.Abs(z.pos-z.target) < eps && gomath.Abs(z.vel) < eps {
		z.pos = z.target
		z.active = false
	}
	c.Zoom(z.pos, false)
	return z.active
}

// Active reports whether a zoom is in progress.
func (z *ZoomSmoother) Active() bool {
	return z.active
}

// Target returns the distance being approached.
func (z *ZoomSmoother) Target() float64 {
	return z.target
}

// Stop abandons the current zoom where it is.
func (z *ZoomSmoother) Stop() {
	z.active = false
	z.vel = 0
}
