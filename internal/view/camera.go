package view

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/pkg/math"
)

// Gaze directions closer to Z than this use Y as the up vector.
const parallelEpsilon = 1e-9

// SetCamera replaces the camera wholesale. An invalid camera is rejected
// and the current one kept.
func (v *View) SetCamera(cam camera.Camera) error {
	if cam.FOV == 0 {
		cam.FOV = camera.DefaultFOV
	}
	if err := cam.Validate(); err != nil {
		logger.Warn("camera rejected", zap.Error(err))
		return err
	}
	cam.PixelWidth = v.width
	cam.PixelHeight = v.height
	v.cam = cam
	return nil
}

// Camera returns a copy of the current camera.
func (v *View) Camera() camera.Camera {
	return v.cam
}

// CameraRef returns the view's camera for in-place interaction (drag,
// zoom). The pointer is valid until the next SetCamera.
func (v *View) CameraRef() *camera.Camera {
	return &v.cam
}

// ResizeGL records a new viewport size. Sizes below 1 are clamped to 1.
func (v *View) ResizeGL(width, height int) {
	if width < 1 || height < 1 {
		logger.Warn("viewport size clamped",
			zap.Int("width", width),
			zap.Int("height", height))
		width = max(width, 1)
		height = max(height, 1)
	}
	v.width = width
	v.height = height
	v.aspect = float64(width) / float64(height)
	v.cam.PixelWidth = width
	v.cam.PixelHeight = height
	v.device.Viewport(width, height)
}

// Viewport returns the current viewport size.
func (v *View) Viewport() (width, height int) {
	return v.width, v.height
}

// Aspect returns width/height of the viewport.
func (v *View) Aspect() float64 {
	return v.aspect
}

// FarFarAway returns the far plane distance of the last SetupCamera.
func (v *View) FarFarAway() float64 {
	return v.farFarAway
}

// SetupCamera derives projection, view and model matrices from the current
// camera and viewport.
func (v *View) SetupCamera() Frame {
	dist := v.cam.ZoomValue()
	v.farFarAway = 100 * dist

	view := math.Identity()
	model := math.Identity()

	switch v.cam.Kind() {
	case camera.KindGimbal:
		g, _ := v.cam.Gimbal()
		view = math.LookAt(math.Vec3{Y: float32(-dist)}, math.Vec3{}, math.Vec3{Z: 1}).
			Mul(math.RotateX(float32(math.Radians(g.Rotation.X)))).
			Mul(math.RotateY(float32(math.Radians(g.Rotation.Y)))).
			Mul(math.RotateZ(float32(math.Radians(g.Rotation.Z))))
		t := g.Translation.Vec3()
		model = math.Translate(t.X, t.Y, t.Z)
	case camera.KindVector:
		p, _ := v.cam.Vector()
		up := math.Vec3d{Z: 1}
		dir := p.Center.Sub(p.Eye).Normalize()
		if dir.Cross(up).Length() < parallelEpsilon {
			up = math.Vec3d{Y: 1}
		}
		view = math.LookAt(p.Eye.Vec3(), p.Center.Vec3(), up.Vec3())
	}

	var proj math.Mat4
	var near, far float64
	if v.cam.Projection == camera.Orthogonal {
		h := dist * gomath.Tan(math.Radians(v.cam.FOV/2))
		near, far = -v.farFarAway, v.farFarAway
		proj = math.Ortho(
			float32(-h*v.aspect), float32(h*v.aspect),
			float32(-h), float32(h),
			float32(near), float32(far),
		)
	} else {
		near, far = 0.1*dist, v.farFarAway
		proj = math.Perspective(float32(math.Radians(v.cam.FOV)), float32(v.aspect), float32(near), float32(far))
	}

	v.frame = Frame{
		Projection: proj,
		View:       view,
		Model:      model,
		Aspect:     v.aspect,
		Near:       near,
		Far:        far,
		Width:      v.width,
		Height:     v.height,
		ShowFaces:  v.showFaces,
		ShowEdges:  v.showEdges,
		UseShaders: v.useShaders,
		Scheme:     v.scheme,
	}
	return v.frame
}

// ViewAll frames the renderer's bounding box. It reports false when there
// is no renderer or the scene is empty.
func (v *View) ViewAll(scale float64) bool {
	if v.renderer == nil {
		return false
	}
	bbox, ok := v.renderer.BoundingBox()
	if !ok || bbox.IsEmpty() {
		return false
	}
	v.cam.ViewAll(bbox, scale)
	logger.Debug("view all",
		zap.Float64("radius", bbox.Radius()),
		zap.Float64("distance", v.cam.ZoomValue()))
	return true
}

// SetAuxAxes moves the auxiliary axes by (dx, dy, dz). Calls accumulate.
func (v *View) SetAuxAxes(dx, dy, dz float64) {
	v.auxOffset = v.auxOffset.Add(math.Vec3d{X: dx, Y: dy, Z: dz})
}

// AuxAxes returns the accumulated auxiliary axes offset.
func (v *View) AuxAxes() (px, py, pz float64) {
	return v.auxOffset.X, v.auxOffset.Y, v.auxOffset.Z
}

// ResetAuxAxes moves the auxiliary axes back to the origin.
func (v *View) ResetAuxAxes() {
	v.auxOffset = math.Vec3d{}
}
