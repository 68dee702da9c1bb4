// Package null provides a back end that draws nothing. It runs the full
// view logic without a graphics context, for tests and headless tooling.
package null

import (
	"errors"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/overlay"
	"github.com/Faultbox/cadview/internal/view"
)

// ErrSaveUnsupported is returned by Save; there are no pixels to write.
var ErrSaveUnsupported = errors.New("null back end cannot save images")

// Info is the renderer description of the null device.
const Info = "NULLGL Renderer"

// Stats counts what the view asked the device to do.
type Stats struct {
	Clears   int
	Passes   int
	Vertices int
	// ByPass counts DrawLines calls per pass name.
	ByPass map[string]int
}

// Device is a view.Device that only counts calls.
type Device struct {
	stats  Stats
	width  int
	height int
}

// Init reports no shader support and a unit line width.
func (d *Device) Init() (view.Capabilities, error) {
	return view.Capabilities{
		MaxLineWidth: 1,
		Renderer:     Info,
	}, nil
}

// Viewport records the size.
func (d *Device) Viewport(width, height int) {
	d.width, d.height = width, height
}

// Clear counts the call.
func (d *Device) Clear(colorscheme.Color) {
	d.stats.Clears++
}

// DrawLines counts the pass and its vertices.
func (d *Device) DrawLines(p overlay.Pass, b overlay.Batch) {
	if d.stats.ByPass == nil {
		d.stats.ByPass = make(map[string]int)
	}
	d.stats.Passes++
	d.stats.Vertices += len(b.Vertices)
	d.stats.ByPass[p.Name]++
}

// Info returns the null renderer description.
func (d *Device) Info() string {
	return Info
}

// Backend is a view backed by the null device.
type Backend struct {
	*view.View
	device *Device
}

var _ view.Backend = (*Backend)(nil)

// New returns an initialized null back end of the given size.
func New(width, height int, registry *colorscheme.Registry) *Backend {
	d := &Device{}
	b := &Backend{View: view.New(d, registry), device: d}
	// the null device cannot fail
	_ = b.InitializeGL()
	b.ResizeGL(width, height)
	return b
}

// Save always fails with ErrSaveUnsupported.
func (b *Backend) Save(string) error {
	return ErrSaveUnsupported
}

// Stats returns the counters accumulated since creation or Reset.
func (b *Backend) Stats() Stats {
	s := b.device.stats
	s.ByPass = make(map[string]int, len(b.device.stats.ByPass))
	for k, v := range b.device.stats.ByPass {
		s.ByPass[k] = v
	}
	return s
}

// Reset clears the counters.
func (b *Backend) Reset() {
	b.device.stats = Stats{}
}

// Renderer is a scene stand-in that draws nothing but reports a bounding
// box, so view-all and painting work without geometry.
type Renderer struct {
	Box    camera.BBox
	Frames int
	Scheme *colorscheme.Scheme
}

// Draw counts the frame.
func (r *Renderer) Draw(view.Frame) {
	r.Frames++
}

// SetColorScheme records the scheme.
func (r *Renderer) SetColorScheme(s *colorscheme.Scheme) {
	r.Scheme = s
}

// BoundingBox returns Box, or false when it is empty.
func (r *Renderer) BoundingBox() (camera.BBox, bool) {
	return r.Box, !r.Box.IsEmpty()
}
