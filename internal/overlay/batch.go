// Package overlay builds the line geometry drawn on top of the scene: axes,
// auxiliary axes, crosshairs, scale markers with labels and the corner axis
// triad. Nothing here touches GL; a Batch is handed to a device together with
// the Pass describing how to draw it.
package overlay

import (
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/pkg/math"
)

// Pass names, in the order the view draws them.
const (
	PassAxes            = "axes"
	PassAuxAxes         = "aux-axes"
	PassCrosshairs      = "crosshairs"
	PassScaleMarkers    = "scale-markers"
	PassAuxScaleMarkers = "aux-scale-markers"
	PassCornerAxes      = "corner-axes"
)

// FloatsPerVertex is the interleaved layout produced by Batch.Floats:
// position xyz followed by color rgba.
const FloatsPerVertex = 7

// Pass describes how a batch is drawn.
type Pass struct {
	Name       string
	Projection math.Mat4
	View       math.Mat4
	Model      math.Mat4
	LineWidth  float32
	DepthTest  bool
}

// MVP returns Projection * View * Model.
func (p Pass) MVP() math.Mat4 {
	return p.Projection.Mul(p.View).Mul(p.Model)
}

// Vertex is one colored line endpoint.
type Vertex struct {
	Pos   math.Vec3
	Color colorscheme.Color
}

// Batch is a list of line segments; vertices come in pairs.
type Batch struct {
	Vertices []Vertex
}

// Line appends the segment a-b.
func (b *Batch) Line(a, c math.Vec3d, color colorscheme.Color) {
	b.Vertices = append(b.Vertices,
		Vertex{Pos: a.Vec3(), Color: color},
		Vertex{Pos: c.Vec3(), Color: color},
	)
}

// DashedLine appends a-c split into dashes of the given length, keeping
// every other dash.
func (b *Batch) DashedLine(a, c math.Vec3d, dash float64, color colorscheme.Color) {
	length := c.Sub(a).Length()
	if dash <= 0 || length <= dash {
		b.Line(a, c, color)
		return
	}
	dir := c.Sub(a).Scale(1 / length)
	for t := 0.0; t < length; t += 2 * dash {
		end := t + dash
		if end > length {
			end = length
		}
		b.Line(a.Add(dir.Scale(t)), a.Add(dir.Scale(end)), color)
	}
}

// Append adds all segments of o.
func (b *Batch) Append(o Batch) {
	b.Vertices = append(b.Vertices, o.Vertices...)
}

// Lines returns the number of segments.
func (b Batch) Lines() int {
	return len(b.Vertices) / 2
}

// Empty reports whether the batch has no segments.
func (b Batch) Empty() bool {
	return len(b.Vertices) == 0
}

// Floats returns the interleaved vertex data for upload.
func (b Batch) Floats() []float32 {
	out := make([]float32, 0, len(b.Vertices)*FloatsPerVertex)
	for _, v := range b.Vertices {
		out = append(out, v.Pos.X, v.Pos.Y, v.Pos.Z, v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	}
	return out
}
