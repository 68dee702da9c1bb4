// Package view coordinates one rendering surface: it owns the camera,
// derives the projection each frame, delegates scene drawing to a Renderer
// and draws the overlays on top through a Device.
//
// A View is not safe for concurrent use. Hosts call InitializeGL once, then
// ResizeGL, the setters and PaintGL from their render thread.
package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/overlay"
	"github.com/Faultbox/cadview/pkg/math"
)

var (
	// ErrNoRenderer is returned by PaintGL when no renderer is set.
	ErrNoRenderer = errors.New("no renderer set")
	// ErrNotInitialized is returned when painting before InitializeGL.
	ErrNotInitialized = errors.New("view not initialized")
	// ErrCapabilityMissing is returned when enabling a feature the device
	// does not support.
	ErrCapabilityMissing = errors.New("graphics capability missing")
)

// Capabilities is what the device reported at initialization.
type Capabilities struct {
	// Shaders reports the lit mesh shading path. Overlays never need it.
	Shaders      bool
	MaxLineWidth float32
	Vendor       string
	Renderer     string
	Version      string
	GLSLVersion  string
}

// GLSLAtLeast reports whether GLSLVersion is at least major.minor. Minor
// versions are compared as two digits, so 3.3 and 3.30 are equal.
func (c Capabilities) GLSLAtLeast(major, minor int) bool {
	for _, field := range strings.Fields(c.GLSLVersion) {
		majText, minText, ok := strings.Cut(field, ".")
		if !ok {
			continue
		}
		ma, err1 := strconv.Atoi(majText)
		mi, err2 := strconv.Atoi(minText)
		if err1 != nil || err2 != nil {
			continue
		}
		if len(minText) == 1 {
			mi *= 10
		}
		if ma != major {
			return ma > major
		}
		return mi >= minor
	}
	return false
}

// Frame is the camera state of one paint.
type Frame struct {
	Projection math.Mat4
	View       math.Mat4
	// Model carries the gimbal object translation; identity for vector
	// cameras.
	Model math.Mat4

	Aspect float64
	Near   float64
	Far    float64
	Width  int
	Height int

	ShowFaces  bool
	ShowEdges  bool
	UseShaders bool
	Scheme     *colorscheme.Scheme
}

// MVP returns Projection * View * Model.
func (f Frame) MVP() math.Mat4 {
	return f.Projection.Mul(f.View).Mul(f.Model)
}

// Device is the graphics context a view draws into. The host makes the
// context current before calling into the view.
type Device interface {
	Init() (Capabilities, error)
	Viewport(width, height int)
	Clear(c colorscheme.Color)
	DrawLines(p overlay.Pass, b overlay.Batch)
	Info() string
}

// Renderer draws the scene. The view does not own it.
type Renderer interface {
	Draw(f Frame)
	SetColorScheme(s *colorscheme.Scheme)
	BoundingBox() (camera.BBox, bool)
}

// Backend is a complete rendering surface: a View plus the context handling
// and output of one kind of target.
type Backend interface {
	PaintGL() error
	Save(filename string) error
	RendererInfo() string
	DPI() float64
}

type state int

const (
	stateUninitialized state = iota
	stateInitialized
)

func (s state) String() string {
	if s == stateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// View is the shared camera and overlay logic of every back end.
type View struct {
	device   Device
	renderer Renderer
	registry *colorscheme.Registry
	scheme   *colorscheme.Scheme

	cam        camera.Camera
	width      int
	height     int
	aspect     float64
	farFarAway float64
	frame      Frame

	showAxes         bool
	showAuxAxes      bool
	showEdges        bool
	showFaces        bool
	showCrosshairs   bool
	showScaleMarkers bool
	proportional     bool
	auxOffset        math.Vec3d

	caps       Capabilities
	useShaders bool
	dpi        float64
	state      state

	crosshairsReported bool
}

// New returns an uninitialized view drawing through device. A nil registry
// gives the view its own registry of built-in schemes.
func New(device Device, registry *colorscheme.Registry) *View {
	if registry == nil {
		registry = colorscheme.NewRegistry()
	}
	v := &View{
		device:           device,
		registry:         registry,
		scheme:           registry.Default(),
		cam:              camera.Default(),
		width:            1,
		height:           1,
		aspect:           1,
		showAxes:         true,
		showFaces:        true,
		showScaleMarkers: true,
		dpi:              1,
	}
	v.farFarAway = 100 * v.cam.ZoomValue()
	return v
}

// Device returns the device the view draws through.
func (v *View) Device() Device {
	return v.device
}

// Registry returns the scheme registry used for name lookups.
func (v *View) Registry() *colorscheme.Registry {
	return v.registry
}

// SetRenderer sets the scene renderer and pushes the current scheme to it.
func (v *View) SetRenderer(r Renderer) {
	v.renderer = r
	if r != nil {
		r.SetColorScheme(v.scheme)
	}
}

// Renderer returns the scene renderer, or nil.
func (v *View) Renderer() Renderer {
	return v.renderer
}

// Capabilities returns what the device reported at initialization.
func (v *View) Capabilities() Capabilities {
	return v.caps
}

// Initialized reports whether InitializeGL has succeeded.
func (v *View) Initialized() bool {
	return v.state == stateInitialized
}

// SetUseShaders enables the shader path of the renderer. Enabling fails
// with ErrCapabilityMissing when the device reported no shader support.
func (v *View) SetUseShaders(on bool) error {
	if !on {
		v.useShaders = false
		return nil
	}
	if v.state != stateInitialized {
		return ErrNotInitialized
	}
	if !v.caps.Shaders {
		return fmt.Errorf("%w: shaders", ErrCapabilityMissing)
	}
	v.useShaders = true
	return nil
}

// UseShaders reports whether the shader path is enabled.
func (v *View) UseShaders() bool {
	return v.useShaders
}

// SetDPI sets the display scale factor. Non-positive values are ignored.
func (v *View) SetDPI(dpi float64) {
	if dpi > 0 {
		v.dpi = dpi
	}
}

// DPI returns the display scale factor, 1.0 unless set.
func (v *View) DPI() float64 {
	return v.dpi
}

// RendererInfo describes the device and its capabilities.
func (v *View) RendererInfo() string {
	info := v.device.Info()
	if v.state != stateInitialized {
		return info
	}
	return fmt.Sprintf("%s\nShaders: %t\nMax line width: %.1f", info, v.caps.Shaders, v.caps.MaxLineWidth)
}
