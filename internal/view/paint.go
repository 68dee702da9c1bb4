package view

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/overlay"
	"github.com/Faultbox/cadview/pkg/math"
)

// InitializeGL queries the device once. Later calls are no-ops.
func (v *View) InitializeGL() error {
	if v.state == stateInitialized {
		logger.Debug("InitializeGL called twice, ignoring")
		return nil
	}
	caps, err := v.device.Init()
	if err != nil {
		return fmt.Errorf("initialize device: %w", err)
	}
	v.caps = caps
	v.state = stateInitialized

	logger.Info("view initialized",
		zap.String("renderer", caps.Renderer),
		zap.String("version", caps.Version),
		zap.Bool("shaders", caps.Shaders))
	return nil
}

// PaintGL draws one frame: clear, scene, then axes, auxiliary axes,
// crosshairs, scale markers (on the auxiliary axes too when shown) and the
// corner triad without depth testing.
func (v *View) PaintGL() error {
	if v.state != stateInitialized {
		return ErrNotInitialized
	}

	v.device.Clear(v.scheme.Color(colorscheme.Background))
	if v.renderer == nil {
		logger.Error("paint without renderer")
		return ErrNoRenderer
	}

	f := v.SetupCamera()
	v.renderer.Draw(f)

	l := v.cam.ZoomValue()
	pass := overlay.Pass{
		Projection: f.Projection,
		View:       f.View,
		Model:      f.Model,
		LineWidth:  float32(v.dpi),
	}
	axesColor := v.scheme.Color(colorscheme.Axes)

	if v.showAxes {
		pass.Name = overlay.PassAxes
		v.device.DrawLines(pass, overlay.Axes(l, axesColor))
	}

	if v.showAuxAxes {
		pass.Name = overlay.PassAuxAxes
		v.device.DrawLines(pass, overlay.AuxAxes(l, v.auxOffset, v.scheme))
	}

	if v.showCrosshairs {
		v.drawCrosshairs(pass)
	}

	if v.showScaleMarkers && (v.showAxes || v.showAuxAxes) {
		opts := overlay.MarkerOptions{
			Length:       l,
			ViewDir:      overlay.ViewDirection(f.View),
			Proportional: v.proportional,
			Color:        axesColor,
		}
		if v.showAxes {
			pass.Name = overlay.PassScaleMarkers
			v.device.DrawLines(pass, overlay.ScaleMarkers(opts))
		}
		if v.showAuxAxes {
			opts.Origin = v.auxOffset
			pass.Name = overlay.PassAuxScaleMarkers
			v.device.DrawLines(pass, overlay.ScaleMarkers(opts))
		}
	}

	if v.showAxes {
		cp, cb := overlay.CornerAxes(f.View, v.width, v.height, v.dpi, v.scheme)
		v.device.DrawLines(cp, cb)
	}

	return nil
}

func (v *View) drawCrosshairs(pass overlay.Pass) {
	b, err := overlay.Crosshairs(v.cam, v.scheme.Color(colorscheme.Crosshair))
	if errors.Is(err, overlay.ErrCrosshairsUnsupported) {
		if !v.crosshairsReported {
			logger.Debug("crosshairs skipped", zap.Stringer("camera", v.cam.Kind()))
			v.crosshairsReported = true
		}
		return
	}
	v.crosshairsReported = false

	pass.Name = overlay.PassCrosshairs
	pass.Model = math.Identity()
	pass.LineWidth = float32(2 * v.dpi)
	v.device.DrawLines(pass, b)
}
