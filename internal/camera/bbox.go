package camera

import (
	gomath "math"

	"github.com/Faultbox/cadview/pkg/math"
)

// BBox is an axis-aligned bounding box in world space. The zero value is
// empty; Extend grows it to include points.
type BBox struct {
	Min, Max math.Vec3d
	valid    bool
}

// NewBBox returns the box spanning the two corners in any order.
func NewBBox(a, b math.Vec3d) BBox {
	var bb BBox
	bb.Extend(a)
	bb.Extend(b)
	return bb
}

// Extend grows the box to contain p.
func (b *BBox) Extend(p math.Vec3d) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = math.Vec3d{X: gomath.Min(b.Min.X, p.X), Y: gomath.Min(b.Min.Y, p.Y), Z: gomath.Min(b.Min.Z, p.Z)}
	b.Max = math.Vec3d{X: gomath.Max(b.Max.X, p.X), Y: gomath.Max(b.Max.Y, p.Y), Z: gomath.Max(b.Max.Z, p.Z)}
}

// IsEmpty reports whether no point has been added.
func (b BBox) IsEmpty() bool {
	return !b.valid
}

// Center returns the midpoint of the box.
func (b BBox) Center() math.Vec3d {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b BBox) Size() math.Vec3d {
	return b.Max.Sub(b.Min)
}

// Radius returns half the diagonal.
func (b BBox) Radius() float64 {
	return b.Size().Length() / 2
}

// Edges returns the 12 box edges as 24 line endpoints.
func (b BBox) Edges() []math.Vec3d {
	lo, hi := b.Min, b.Max
	c := [8]math.Vec3d{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	edges := [12][2]int{
		// Bottom
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Top
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Vertical
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([]math.Vec3d, 0, 24)
	for _, e := range edges {
		out = append(out, c[e[0]], c[e[1]])
	}
	return out
}
