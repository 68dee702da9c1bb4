// Package camera provides the two camera models used by the view.
//
// A gimbal camera is described by an object rotation, an object translation
// and a viewer distance from the pivot. A vector camera is described by an
// eye position and the point it looks at. A Camera carries exactly one of the
// two; the payloads are never kept in sync, and switching between them goes
// through ToVector or ToGimbal, which are lossy.
package camera

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/cadview/pkg/math"
)

// Kind selects which payload of a Camera is authoritative.
type Kind int

const (
	KindNone Kind = iota
	KindGimbal
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindGimbal:
		return "gimbal"
	case KindVector:
		return "vector"
	default:
		return "none"
	}
}

// Projection selects perspective or orthogonal projection.
type Projection int

const (
	Perspective Projection = iota
	Orthogonal
)

func (p Projection) String() string {
	if p == Orthogonal {
		return "orthogonal"
	}
	return "perspective"
}

// ParseProjection accepts "perspective"/"persp" and "orthogonal"/"ortho".
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perspective", "persp":
		return Perspective, nil
	case "orthogonal", "ortho", "orthographic":
		return Orthogonal, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

var (
	// ErrInvalidCamera is returned for cameras that cannot produce a view.
	ErrInvalidCamera = errors.New("invalid camera")
	// ErrBadParams is returned by Setup for parameter lists that are neither
	// 7 numbers (gimbal) nor 6 numbers (vector).
	ErrBadParams = errors.New("camera parameters must be 7 numbers (gimbal) or 6 numbers (vector)")
)

const (
	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV = 22.5
	// DefaultDistance is the viewer distance after ResetView.
	DefaultDistance = 140.0
	// DefaultDistanceTranslate is the viewer distance after DefaultTranslate.
	DefaultDistanceTranslate = 500.0

	// minEyeDistance is the smallest eye-center separation accepted for a
	// vector camera.
	minEyeDistance = 1e-9
)

// DefaultRotation is the gimbal rotation, in degrees, used by ResetView.
var DefaultRotation = math.Vec3d{X: 35, Y: 0, Z: -25}

// GimbalParams is the gimbal payload.
type GimbalParams struct {
	// Rotation in degrees about X, then Y, then Z.
	Rotation math.Vec3d
	// Translation applied to the object before rotation.
	Translation math.Vec3d
	// Distance from the eye to the pivot. Must be > 0.
	Distance float64
}

// Pivot returns the world point the gimbal camera orbits and looks at.
func (g GimbalParams) Pivot() math.Vec3d {
	return g.Translation.Scale(-1)
}

// VectorParams is the vector payload.
type VectorParams struct {
	Eye    math.Vec3d
	Center math.Vec3d
}

// Distance returns |Center - Eye|.
func (v VectorParams) Distance() float64 {
	return v.Center.Sub(v.Eye).Length()
}

// Camera is a tagged union over GimbalParams and VectorParams.
type Camera struct {
	kind   Kind
	gimbal GimbalParams
	vector VectorParams

	Projection Projection
	// FOV is the vertical field of view in degrees.
	FOV float64

	PixelWidth  int
	PixelHeight int
}

// NewGimbal returns a perspective gimbal camera.
func NewGimbal(p GimbalParams) Camera {
	return Camera{kind: KindGimbal, gimbal: p, FOV: DefaultFOV}
}

// NewVector returns a perspective vector camera.
func NewVector(p VectorParams) Camera {
	return Camera{kind: KindVector, vector: p, FOV: DefaultFOV}
}

// Default returns the gimbal camera produced by ResetView.
func Default() Camera {
	c := Camera{FOV: DefaultFOV}
	c.ResetView()
	return c
}

// Kind returns which payload is authoritative.
func (c Camera) Kind() Kind {
	return c.kind
}

// Gimbal returns the gimbal payload. ok is false unless Kind is KindGimbal.
func (c Camera) Gimbal() (p GimbalParams, ok bool) {
	if c.kind != KindGimbal {
		return GimbalParams{}, false
	}
	return c.gimbal, true
}

// Vector returns the vector payload. ok is false unless Kind is KindVector.
func (c Camera) Vector() (p VectorParams, ok bool) {
	if c.kind != KindVector {
		return VectorParams{}, false
	}
	return c.vector, true
}

// SetGimbal makes the camera a gimbal camera with the given payload.
func (c *Camera) SetGimbal(p GimbalParams) {
	c.kind = KindGimbal
	c.gimbal = p
}

// SetVector makes the camera a vector camera with the given payload.
func (c *Camera) SetVector(p VectorParams) {
	c.kind = KindVector
	c.vector = p
}

// Validate reports whether the camera can produce a view transform.
func (c Camera) Validate() error {
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: fov %v out of range (0, 180)", ErrInvalidCamera, c.FOV)
	}
	switch c.kind {
	case KindGimbal:
		g := c.gimbal
		if !g.Rotation.IsFinite() || !g.Translation.IsFinite() {
			return fmt.Errorf("%w: non-finite gimbal parameters", ErrInvalidCamera)
		}
		if gomath.IsNaN(g.Distance) || gomath.IsInf(g.Distance, 0) || g.Distance <= 0 {
			return fmt.Errorf("%w: gimbal distance %v must be > 0", ErrInvalidCamera, g.Distance)
		}
	case KindVector:
		v := c.vector
		if !v.Eye.IsFinite() || !v.Center.IsFinite() {
			return fmt.Errorf("%w: non-finite vector parameters", ErrInvalidCamera)
		}
		if v.Distance() < minEyeDistance {
			return fmt.Errorf("%w: eye and center coincide", ErrInvalidCamera)
		}
	default:
		return fmt.Errorf("%w: camera type not set", ErrInvalidCamera)
	}
	return nil
}

// Setup configures the camera from a flat parameter list:
// 7 values select a gimbal camera (tx ty tz rx ry rz distance),
// 6 values select a vector camera (ex ey ez cx cy cz).
func (c *Camera) Setup(params []float64) error {
	switch len(params) {
	case 7:
		c.SetGimbal(GimbalParams{
			Translation: math.Vec3d{X: params[0], Y: params[1], Z: params[2]},
			Rotation:    math.Vec3d{X: params[3], Y: params[4], Z: params[5]},
			Distance:    params[6],
		})
	case 6:
		c.SetVector(VectorParams{
			Eye:    math.Vec3d{X: params[0], Y: params[1], Z: params[2]},
			Center: math.Vec3d{X: params[3], Y: params[4], Z: params[5]},
		})
	default:
		return fmt.Errorf("%w: got %d", ErrBadParams, len(params))
	}
	if c.FOV == 0 {
		c.FOV = DefaultFOV
	}
	return c.Validate()
}

// ZoomValue returns the distance between the eye and the point looked at.
func (c Camera) ZoomValue() float64 {
	switch c.kind {
	case KindGimbal:
		return c.gimbal.Distance
	case KindVector:
		return c.vector.Distance()
	}
	return 0
}

// Zoom changes the viewing distance. A relative zoom scales the distance by
// 0.9^(delta/120), matching one mouse wheel notch per 120 units; an absolute
// zoom sets the distance to delta. Non-positive results are ignored.
func (c *Camera) Zoom(delta float64, relative bool) {
	dist := c.ZoomValue()
	if relative {
		dist *= gomath.Pow(0.9, delta/120.0)
	} else {
		dist = delta
	}
	if !(dist > 0) || gomath.IsInf(dist, 0) {
		return
	}

	switch c.kind {
	case KindGimbal:
		c.gimbal.Distance = dist
	case KindVector:
		dir := c.vector.Eye.Sub(c.vector.Center).Normalize()
		c.vector.Eye = c.vector.Center.Add(dir.Scale(dist))
	}
}

// Rotate adds the given angles, in degrees, to a gimbal camera's rotation
// and wraps each into [0, 360). It reports false for other camera kinds.
func (c *Camera) Rotate(dx, dy, dz float64) bool {
	if c.kind != KindGimbal {
		return false
	}
	r := &c.gimbal.Rotation
	r.X = normalizeAngle(r.X + dx)
	r.Y = normalizeAngle(r.Y + dy)
	r.Z = normalizeAngle(r.Z + dz)
	return true
}

// Translate moves the camera target by delta in world space. For a gimbal
// camera the object translation moves the opposite way.
func (c *Camera) Translate(delta math.Vec3d) {
	switch c.kind {
	case KindGimbal:
		c.gimbal.Translation = c.gimbal.Translation.Sub(delta)
	case KindVector:
		c.vector.Eye = c.vector.Eye.Add(delta)
		c.vector.Center = c.vector.Center.Add(delta)
	}
}

// Pan moves the scene within the screen plane by right and up world units,
// so the scene follows a dragging cursor.
func (c *Camera) Pan(right, up float64) {
	var r, u math.Vec3d
	switch c.kind {
	case KindGimbal:
		r = inverseRotate(math.Vec3d{X: 1}, c.gimbal.Rotation)
		u = inverseRotate(math.Vec3d{Z: 1}, c.gimbal.Rotation)
	case KindVector:
		dir := c.vector.Center.Sub(c.vector.Eye).Normalize()
		r = dir.Cross(math.Vec3d{Z: 1})
		if r.Length() < 1e-9 {
			r = dir.Cross(math.Vec3d{Y: 1})
		}
		r = r.Normalize()
		u = r.Cross(dir)
	default:
		return
	}
	c.Translate(r.Scale(-right).Add(u.Scale(-up)))
}

// ResetView restores the default gimbal view.
func (c *Camera) ResetView() {
	c.SetGimbal(GimbalParams{
		Rotation: DefaultRotation,
		Distance: DefaultDistance,
	})
}

// DefaultTranslate centers a gimbal camera on the origin at the default
// rotation and a distance suitable for an empty scene.
func (c *Camera) DefaultTranslate() {
	c.SetGimbal(GimbalParams{
		Rotation: DefaultRotation,
		Distance: DefaultDistanceTranslate,
	})
}

// ViewAll positions the camera so the whole bounding box is visible.
// scale > 1 leaves a margin around the box. A camera without a kind becomes
// a vector camera looking at the box from the front-right-above diagonal.
func (c *Camera) ViewAll(bbox BBox, scale float64) {
	if bbox.IsEmpty() {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	if c.FOV <= 0 {
		c.FOV = DefaultFOV
	}
	center := bbox.Center()

	if c.kind == KindNone {
		c.SetVector(VectorParams{
			Center: center,
			Eye:    center.Sub(math.Vec3d{X: 1, Y: 1, Z: -0.5}),
		})
	}

	radius := bbox.Radius()
	distance := DefaultDistance
	if radius > 0 {
		distance = radius / gomath.Sin(math.Radians(c.FOV/2)) * scale
	}

	switch c.kind {
	case KindGimbal:
		c.gimbal.Translation = center.Scale(-1)
		c.gimbal.Distance = distance
	case KindVector:
		dir := c.vector.Center.Sub(c.vector.Eye).Normalize()
		if dir == (math.Vec3d{}) {
			dir = math.Vec3d{X: 1, Y: 1, Z: -0.5}.Normalize()
		}
		c.vector.Center = center
		c.vector.Eye = center.Sub(dir.Scale(distance))
	}
}

// ToVector returns the vector camera seeing the same view as a gimbal
// camera. Vector cameras are returned unchanged. The conversion keeps eye
// and target; the roll implied by the gimbal rotation is lost.
func (c Camera) ToVector() Camera {
	if c.kind != KindGimbal {
		return c
	}
	g := c.gimbal
	center := g.Pivot()
	eyeDir := inverseRotate(math.Vec3d{X: 0, Y: -1, Z: 0}, g.Rotation)

	out := c
	out.SetVector(VectorParams{
		Center: center,
		Eye:    center.Add(eyeDir.Scale(g.Distance)),
	})
	return out
}

// ToGimbal returns the gimbal camera seeing the same view as a vector
// camera, with zero Y rotation. Gimbal cameras are returned unchanged.
func (c Camera) ToGimbal() Camera {
	if c.kind != KindVector {
		return c
	}
	v := c.vector
	dist := v.Distance()
	e := v.Eye.Sub(v.Center).Normalize()

	rx := gomath.Asin(clamp(e.Z, -1, 1)) * 180 / gomath.Pi
	rz := gomath.Atan2(-e.X, -e.Y) * 180 / gomath.Pi

	out := c
	out.SetGimbal(GimbalParams{
		Rotation:    math.Vec3d{X: normalizeAngle(rx), Y: 0, Z: normalizeAngle(rz)},
		Translation: v.Center.Scale(-1),
		Distance:    dist,
	})
	return out
}

// StatusText describes the camera for a status bar.
func (c Camera) StatusText() string {
	switch c.kind {
	case KindGimbal:
		g := c.gimbal
		return fmt.Sprintf("Viewport: translate = [ %.2f %.2f %.2f ], rotate = [ %.2f %.2f %.2f ], distance = %.2f, fov = %.2f",
			g.Translation.X, g.Translation.Y, g.Translation.Z,
			g.Rotation.X, g.Rotation.Y, g.Rotation.Z,
			g.Distance, c.FOV)
	case KindVector:
		v := c.vector
		return fmt.Sprintf("Viewport: eye = [ %.2f %.2f %.2f ], center = [ %.2f %.2f %.2f ], distance = %.2f, fov = %.2f",
			v.Eye.X, v.Eye.Y, v.Eye.Z,
			v.Center.X, v.Center.Y, v.Center.Z,
			v.Distance(), c.FOV)
	}
	return "Viewport: no camera"
}

// inverseRotate applies the inverse of the X-then-Y-then-Z gimbal rotation
// (angles in degrees) to v.
func inverseRotate(v math.Vec3d, rot math.Vec3d) math.Vec3d {
	v = rotateX(v, -rot.X)
	v = rotateY(v, -rot.Y)
	return rotateZ(v, -rot.Z)
}

func rotateX(v math.Vec3d, deg float64) math.Vec3d {
	s, c := gomath.Sincos(math.Radians(deg))
	return math.Vec3d{X: v.X, Y: c*v.Y - s*v.Z, Z: s*v.Y + c*v.Z}
}

func rotateY(v math.Vec3d, deg float64) math.Vec3d {
	s, c := gomath.Sincos(math.Radians(deg))
	return math.Vec3d{X: c*v.X + s*v.Z, Y: v.Y, Z: -s*v.X + c*v.Z}
}

func rotateZ(v math.Vec3d, deg float64) math.Vec3d {
	s, c := gomath.Sincos(math.Radians(deg))
	return math.Vec3d{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}
}

func normalizeAngle(deg float64) float64 {
	deg = gomath.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
