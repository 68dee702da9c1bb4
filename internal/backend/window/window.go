// Package window hosts a view in a visible SDL window.
package window

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/engine/framebuffer"
	"github.com/Faultbox/cadview/internal/engine/renderer"
	"github.com/Faultbox/cadview/internal/engine/snapshot"
	sdlwindow "github.com/Faultbox/cadview/internal/engine/window"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/view"
)

// Backend is a view presented in an on-screen window.
type Backend struct {
	*view.View
	win    *sdlwindow.Window
	device *renderer.Device
}

var _ view.Backend = (*Backend)(nil)

// New opens the window, initializes the view and sizes it to the drawable.
func New(cfg sdlwindow.Config, registry *colorscheme.Registry) (*Backend, error) {
	win, err := sdlwindow.New(cfg)
	if err != nil {
		return nil, err
	}

	b := &Backend{win: win, device: renderer.NewDevice()}
	b.View = view.New(b.device, registry)
	if err := b.InitializeGL(); err != nil {
		b.Close()
		return nil, err
	}
	b.Resized()
	return b, nil
}

// Window returns the underlying SDL window.
func (b *Backend) Window() *sdlwindow.Window {
	return b.win
}

// Resized picks up the current drawable size and pixel ratio. Call it after
// a window resize event.
func (b *Backend) Resized() {
	w, h := b.win.DrawableSize()
	b.SetDPI(b.win.PixelRatio())
	b.ResizeGL(w, h)
	logger.Debug("window resized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Float64("dpi", b.DPI()))
}

// PaintGL draws a frame and presents it.
func (b *Backend) PaintGL() error {
	if err := b.View.PaintGL(); err != nil {
		return err
	}
	b.win.SwapBuffers()
	return nil
}

// Save redraws the frame into the back buffer and writes it to filename
// without presenting it.
func (b *Backend) Save(filename string) error {
	if err := b.View.PaintGL(); err != nil {
		return fmt.Errorf("paint for save: %w", err)
	}
	w, h := b.Viewport()
	img, err := framebuffer.ReadDefault(w, h)
	if err != nil {
		return fmt.Errorf("read back buffer: %w", err)
	}
	if err := snapshot.Save(filename, img); err != nil {
		return err
	}
	logger.Info("screenshot saved", zap.String("path", filename))
	return nil
}

// Close releases the device and the window.
func (b *Backend) Close() {
	if b.device != nil {
		b.device.Close()
	}
	if b.win != nil {
		b.win.Close()
		b.win = nil
	}
}
