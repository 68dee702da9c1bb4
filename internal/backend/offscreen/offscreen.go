// Package offscreen renders a view into a framebuffer object and saves the
// result as an image. The GL context comes from a hidden SDL window.
package offscreen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/engine/framebuffer"
	"github.com/Faultbox/cadview/internal/engine/renderer"
	"github.com/Faultbox/cadview/internal/engine/snapshot"
	"github.com/Faultbox/cadview/internal/engine/window"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/view"
)

// Backend is a view drawing into an offscreen framebuffer.
type Backend struct {
	*view.View
	win    *window.Window
	device *renderer.Device
	fb     *framebuffer.Framebuffer
}

var _ view.Backend = (*Backend)(nil)

// New creates a hidden context and a width x height framebuffer, and
// initializes the view.
func New(width, height int, registry *colorscheme.Registry) (*Backend, error) {
	width, height = max(width, 1), max(height, 1)

	win, err := window.New(window.Config{
		Title:  "cadview offscreen",
		Width:  width,
		Height: height,
		Hidden: true,
	})
	if err != nil {
		return nil, fmt.Errorf("offscreen context: %w", err)
	}

	b := &Backend{win: win, device: renderer.NewDevice()}
	b.View = view.New(b.device, registry)
	if err := b.InitializeGL(); err != nil {
		b.Close()
		return nil, err
	}

	b.fb, err = framebuffer.New(width, height)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.View.ResizeGL(width, height)

	logger.Info("offscreen back end ready",
		zap.Int("width", width),
		zap.Int("height", height))
	return b, nil
}

// ResizeGL resizes the framebuffer and the viewport.
func (b *Backend) ResizeGL(width, height int) {
	b.fb.Resize(width, height)
	b.View.ResizeGL(width, height)
}

// PaintGL draws one frame into the framebuffer.
func (b *Backend) PaintGL() error {
	b.fb.Bind()
	defer b.fb.Unbind()
	return b.View.PaintGL()
}

// Save writes the framebuffer contents to filename. The format follows the
// extension.
func (b *Backend) Save(filename string) error {
	img, err := b.fb.ReadImage()
	if err != nil {
		return fmt.Errorf("read framebuffer: %w", err)
	}
	if err := snapshot.Save(filename, img); err != nil {
		return err
	}
	logger.Info("image saved", zap.String("path", filename))
	return nil
}

// Close releases the framebuffer, the device and the context.
func (b *Backend) Close() {
	if b.fb != nil {
		b.fb.Destroy()
		b.fb = nil
	}
	if b.device != nil {
		b.device.Close()
	}
	if b.win != nil {
		b.win.Close()
		b.win = nil
	}
}
