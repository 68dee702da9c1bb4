package overlay

import (
	"errors"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/pkg/math"
)

// ErrCrosshairsUnsupported is returned by Crosshairs for cameras other than
// gimbal cameras, whose pivot is the only well-defined gaze target.
var ErrCrosshairsUnsupported = errors.New("crosshairs require a gimbal camera")

var unitAxes = [3]math.Vec3d{{X: 1}, {Y: 1}, {Z: 1}}

var axisRoles = [3]colorscheme.Role{colorscheme.AxisX, colorscheme.AxisY, colorscheme.AxisZ}

// Axes draws the reference axes through the origin, each half l long.
// Negative halves are dashed.
func Axes(l float64, color colorscheme.Color) Batch {
	var b Batch
	for _, e := range unitAxes {
		b.Line(math.Vec3d{}, e.Scale(l), color)
	}
	for _, e := range unitAxes {
		b.DashedLine(math.Vec3d{}, e.Scale(-l), l/100, color)
	}
	return b
}

// AuxAxes draws a full axis triad centered on offset in the per-axis colors.
func AuxAxes(l float64, offset math.Vec3d, s *colorscheme.Scheme) Batch {
	var b Batch
	for i, e := range unitAxes {
		b.Line(offset.Sub(e.Scale(l)), offset.Add(e.Scale(l)), s.Color(axisRoles[i]))
	}
	return b
}

// Crosshairs draws four diagonals through the gimbal pivot, dist/8 long in
// each direction. The batch is meant for a pass whose model matrix is the
// identity so it stays on the pivot.
func Crosshairs(cam camera.Camera, color colorscheme.Color) (Batch, error) {
	if cam.Kind() != camera.KindGimbal {
		return Batch{}, ErrCrosshairsUnsupported
	}
	vd := cam.ZoomValue() / 8

	var b Batch
	for _, xf := range [2]float64{-1, 1} {
		for _, yf := range [2]float64{-1, 1} {
			b.Line(
				math.Vec3d{X: -xf * vd, Y: -yf * vd, Z: -vd},
				math.Vec3d{X: xf * vd, Y: yf * vd, Z: vd},
				color,
			)
		}
	}
	return b, nil
}

// Corner triad layout, in pixels at DPI 1.
const (
	cornerMargin = 60
	cornerLength = 40
	cornerLabel  = 12
)

// CornerAxes draws a small axis triad in the lower left corner that turns
// with the camera, labeled X, Y and Z at the projected tips. view is the
// camera view matrix; only its rotation is used. The batch is in window
// pixels.
func CornerAxes(view math.Mat4, width, height int, dpi float64, s *colorscheme.Scheme) (Pass, Batch) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if dpi <= 0 {
		dpi = 1
	}
	w, h := float32(width), float32(height)
	margin := float32(cornerMargin * dpi)
	length := float32(cornerLength * dpi)
	size := cornerLabel * dpi

	rot := view
	rot[12], rot[13], rot[14] = 0, 0, 0
	modelView := math.Translate(margin, margin, 0).Mul(rot)
	proj := math.Ortho(0, w, 0, h, -2*length, 2*length)
	viewport := [4]float32{0, 0, w, h}
	toWindow := func(p math.Vec3) math.Vec3d {
		win, _ := math.Project(p, modelView, proj, viewport)
		return math.Vec3d{X: float64(win.X), Y: float64(win.Y)}
	}

	var b Batch
	center := toWindow(math.Vec3{})
	for i, e := range unitAxes {
		axis := e.Vec3()
		b.Line(center, toWindow(axis.Scale(length)), s.Color(axisRoles[i]))

		tip := toWindow(axis.Scale(length * 1.3))
		label := string("XYZ"[i])
		origin := math.Vec3d{X: tip.X - TextWidth(label, size)/2, Y: tip.Y - size/2}
		Text(&b, label, origin, math.Vec3d{X: 1}, math.Vec3d{Y: 1}, size, s.Color(colorscheme.Axes))
	}

	pass := Pass{
		Name:       PassCornerAxes,
		Projection: math.Ortho(0, w, 0, h, -1, 1),
		View:       math.Identity(),
		Model:      math.Identity(),
		LineWidth:  float32(dpi),
	}
	return pass, b
}

// ViewDirection returns the world-space gaze direction encoded in a view
// matrix.
func ViewDirection(view math.Mat4) math.Vec3d {
	return math.Vec3d{X: -float64(view[2]), Y: -float64(view[6]), Z: -float64(view[10])}.Normalize()
}
