// Package viewer runs the interactive model viewer: window, input and the
// frame loop around a view.
package viewer

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/backend/null"
	backend "github.com/Faultbox/cadview/internal/backend/window"
	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/config"
	"github.com/Faultbox/cadview/internal/engine/input"
	"github.com/Faultbox/cadview/internal/engine/snapshot"
	"github.com/Faultbox/cadview/internal/engine/window"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/scene"
	"github.com/Faultbox/cadview/internal/scene/render"
)

const (
	title      = "cadview"
	defaultFPS = 60
	// ViewAll margin around the model.
	viewAllScale = 1.1
)

// Viewer is the interactive viewer instance.
type Viewer struct {
	cfg      *config.Config
	running  bool
	backend  *backend.Backend
	input    *input.Input
	registry *colorscheme.Registry
	mesh     *render.Renderer
	zoom     *camera.ZoomSmoother
	capture  *snapshot.Capture

	// schemeChanged is signalled by the scheme watcher goroutine.
	schemeChanged chan struct{}
	stopWatch     context.CancelFunc
}

// New opens the window and loads the configured model, if any.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("model", cfg.Render.Model),
	)

	v := &Viewer{
		cfg:           cfg,
		input:         input.New(),
		registry:      colorscheme.NewRegistry(),
		capture:       snapshot.NewCapture(cfg.Render.ScreenshotDir, "cadview"),
		schemeChanged: make(chan struct{}, 1),
	}
	fps := cfg.Window.FPSLimit
	if fps <= 0 {
		fps = defaultFPS
	}
	v.zoom = camera.NewZoomSmoother(fps)

	if err := v.loadSchemes(); err != nil {
		logger.Warn("loading color schemes", zap.Error(err))
	}

	var err error
	v.backend, err = backend.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	}, v.registry)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := cfg.Apply(v.backend.View); err != nil {
		logger.Warn("view configuration", zap.Error(err))
	}

	if err := v.loadModel(cfg.Render.Model); err != nil {
		v.Close()
		return nil, err
	}

	logger.Info("viewer initialized", zap.String("renderer", v.backend.Capabilities().Renderer))
	return v, nil
}

func (v *Viewer) loadSchemes() error {
	dir := v.cfg.ColorScheme.Dir
	if dir == "" {
		return nil
	}
	if _, err := v.registry.LoadDir(dir); err != nil {
		// bad files are skipped, the rest stay loaded
		logger.Warn("color scheme files skipped", zap.Error(err))
	}
	if !v.cfg.ColorScheme.Watch {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := v.registry.Watch(ctx, dir, func(*colorscheme.Scheme) {
		select {
		case v.schemeChanged <- struct{}{}:
		default:
		}
	}); err != nil {
		cancel()
		return err
	}
	v.stopWatch = cancel
	return nil
}

func (v *Viewer) loadModel(path string) error {
	if path == "" {
		// empty scene: overlays only
		v.backend.SetRenderer(&null.Renderer{})
		return nil
	}
	m, err := scene.Load(path)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	v.mesh, err = render.New(m)
	if err != nil {
		return fmt.Errorf("uploading model: %w", err)
	}
	v.backend.SetRenderer(v.mesh)
	v.backend.Window().SetTitle(fmt.Sprintf("%s - %s", title, m.Name))
	if v.cfg.Camera.ViewAll {
		v.backend.ViewAll(viewAllScale)
	}
	return nil
}

// Run starts the frame loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameBudget time.Duration
	if v.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Window.FPSLimit)
	}

	logger.Info("starting frame loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		// 2. Scheme reloads and zoom animation
		select {
		case <-v.schemeChanged:
			v.backend.UpdateColorScheme()
		default:
		}
		v.zoom.Update(v.backend.CameraRef())

		// 3. Render and present
		if err := v.backend.PaintGL(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) handle(e input.Event) {
	cam := v.backend.CameraRef()

	switch e.Type {
	case input.EventWindowResize:
		v.backend.Resized()

	case input.EventMouseMove:
		switch {
		case e.Dragging(input.ButtonLeft):
			v.zoom.Stop()
			speed := v.cfg.Camera.RotateSpeed
			cam.Rotate(float64(e.DY)*speed, 0, float64(e.DX)*speed)
		case e.Dragging(input.ButtonRight), e.Dragging(input.ButtonMiddle):
			scale := v.worldPerPixel()
			cam.Pan(float64(e.DX)*scale, -float64(e.DY)*scale)
		}

	case input.EventMouseWheel:
		delta := e.Wheel * 120
		if v.cfg.Camera.ZoomSmoothing {
			v.zoom.Zoom(cam, delta)
		} else {
			cam.Zoom(delta, true)
		}

	case input.EventKeyDown:
		v.key(e)
	}
}

// worldPerPixel is the size of one pixel at the pivot distance.
func (v *Viewer) worldPerPixel() float64 {
	cam := v.backend.Camera()
	_, h := v.backend.Viewport()
	// mouse deltas are in screen coordinates, the viewport in pixels
	h = int(float64(h) / v.backend.DPI())
	return 2 * cam.ZoomValue() * gomath.Tan(cam.FOV*gomath.Pi/360) / float64(max(h, 1))
}

// presetKeys maps Ctrl+digit to the standard views.
var presetKeys = map[sdl.Scancode]camera.Preset{
	sdl.SCANCODE_0: camera.PresetDiagonal,
	sdl.SCANCODE_4: camera.PresetTop,
	sdl.SCANCODE_5: camera.PresetBottom,
	sdl.SCANCODE_6: camera.PresetLeft,
	sdl.SCANCODE_7: camera.PresetRight,
	sdl.SCANCODE_8: camera.PresetFront,
	sdl.SCANCODE_9: camera.PresetBack,
}

func (v *Viewer) key(e input.Event) {
	b := v.backend
	cam := b.CameraRef()

	if e.Mod&sdl.KMOD_CTRL != 0 {
		if e.Key == sdl.SCANCODE_S {
			v.saveConfig()
			return
		}
		if p, ok := presetKeys[e.Key]; ok {
			v.zoom.Stop()
			cam.SetPreset(p)
			logger.Debug("view preset", zap.Stringer("preset", p))
		}
		return
	}

	if e.Mod&sdl.KMOD_SHIFT != 0 {
		v.moveAuxAxes(e.Key)
		return
	}

	switch e.Key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		v.running = false
	case sdl.SCANCODE_1:
		b.SetShowAxes(!b.ShowAxes())
	case sdl.SCANCODE_2:
		b.SetShowScaleMarkers(!b.ShowScaleMarkers())
	case sdl.SCANCODE_3:
		b.SetShowCrosshairs(!b.ShowCrosshairs())
	case sdl.SCANCODE_4:
		b.SetShowEdges(!b.ShowEdges())
	case sdl.SCANCODE_5:
		b.SetShowFaces(!b.ShowFaces())
	case sdl.SCANCODE_6:
		b.SetShowScaleProportional(!b.ShowScaleProportional())
	case sdl.SCANCODE_7:
		b.SetShowAuxAxes(!b.ShowAuxAxes())
	case sdl.SCANCODE_S:
		if err := b.SetUseShaders(!b.UseShaders()); err != nil {
			logger.Warn("toggle shaders", zap.Error(err))
		}
	case sdl.SCANCODE_P:
		if cam.Projection == camera.Perspective {
			cam.Projection = camera.Orthogonal
		} else {
			cam.Projection = camera.Perspective
		}
		logger.Debug("projection", zap.Stringer("projection", cam.Projection))
	case sdl.SCANCODE_V:
		v.zoom.Stop()
		b.ViewAll(viewAllScale)
	case sdl.SCANCODE_R:
		v.zoom.Stop()
		cam.ResetView()
	case sdl.SCANCODE_C:
		v.nextScheme()
	case sdl.SCANCODE_I:
		logger.Info(cam.StatusText())
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
}

// auxKeys move the auxiliary axes along world axes, in steps of a tenth of
// the viewing distance.
var auxKeys = map[sdl.Scancode][3]float64{
	sdl.SCANCODE_RIGHT:    {1, 0, 0},
	sdl.SCANCODE_LEFT:     {-1, 0, 0},
	sdl.SCANCODE_UP:       {0, 1, 0},
	sdl.SCANCODE_DOWN:     {0, -1, 0},
	sdl.SCANCODE_PAGEUP:   {0, 0, 1},
	sdl.SCANCODE_PAGEDOWN: {0, 0, -1},
}

func (v *Viewer) moveAuxAxes(key sdl.Scancode) {
	b := v.backend
	if key == sdl.SCANCODE_HOME {
		b.ResetAuxAxes()
		return
	}
	d, ok := auxKeys[key]
	if !ok {
		return
	}
	step := b.Camera().ZoomValue() / 10
	b.SetAuxAxes(d[0]*step, d[1]*step, d[2]*step)
	b.SetShowAuxAxes(true)
	x, y, z := b.AuxAxes()
	logger.Debug("aux axes", zap.Float64("x", x), zap.Float64("y", y), zap.Float64("z", z))
}

// saveConfig writes the current view settings to the config file in use,
// or to the user's config directory.
func (v *Viewer) saveConfig() {
	v.cfg.Capture(v.backend.View)
	var err error
	if path := config.ConfigPath(); path != "" {
		err = v.cfg.SaveTo(path)
	} else {
		err = v.cfg.Save()
	}
	if err != nil {
		logger.Error("saving config", zap.Error(err))
		return
	}
	logger.Info("config saved")
}

// nextScheme installs the scheme after the current one in registry order.
func (v *Viewer) nextScheme() {
	names := v.registry.Names()
	current := v.backend.ColorScheme().Name()
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := v.backend.SetColorSchemeByName(next); err != nil {
		logger.Warn("color scheme", zap.Error(err))
		return
	}
	logger.Info("color scheme", zap.String("name", next))
}

func (v *Viewer) screenshot() {
	path := v.capture.NextFilename()
	if err := v.backend.Save(path); err != nil {
		logger.Error("screenshot failed", zap.Error(err))
	}
}

// Close releases the model, the window and the scheme watcher.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.stopWatch != nil {
		v.stopWatch()
	}
	if v.mesh != nil {
		v.mesh.Close()
	}
	if v.backend != nil {
		v.backend.Close()
	}
}
