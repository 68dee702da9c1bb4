package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/view"
	"github.com/Faultbox/cadview/pkg/math"
)

// Build returns the configured gimbal camera.
func (c CameraConfig) Build() (camera.Camera, error) {
	proj, err := camera.ParseProjection(c.Projection)
	if err != nil {
		return camera.Camera{}, err
	}
	cam := camera.NewGimbal(camera.GimbalParams{
		Rotation: math.Vec3d{X: c.Rotation[0], Y: c.Rotation[1], Z: c.Rotation[2]},
		Distance: c.Distance,
	})
	cam.Projection = proj
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	if err := cam.Validate(); err != nil {
		return camera.Camera{}, err
	}
	return cam, nil
}

// Apply configures the overlay toggles, camera and color scheme of v.
// The view stays usable on error: an unknown scheme leaves the default
// installed, a bad camera leaves the previous one.
func (c *Config) Apply(v *view.View) error {
	v.SetShowAxes(c.View.ShowAxes)
	v.SetShowScaleMarkers(c.View.ShowScaleMarkers)
	v.SetShowScaleProportional(c.View.ScaleProportional)
	v.SetShowCrosshairs(c.View.ShowCrosshairs)
	v.SetShowEdges(c.View.ShowEdges)
	v.SetShowFaces(c.View.ShowFaces)
	v.SetShowAuxAxes(c.View.ShowAuxAxes)
	v.ResetAuxAxes()
	v.SetAuxAxes(c.View.AuxOffset[0], c.View.AuxOffset[1], c.View.AuxOffset[2])

	var errs []error
	if err := v.SetUseShaders(c.View.UseShaders); err != nil {
		errs = append(errs, err)
	}

	cam, err := c.Camera.Build()
	if err == nil {
		err = v.SetCamera(cam)
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}

	if err := v.SetColorSchemeByName(c.ColorScheme.Name); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Capture copies the toggles, aux axes, scheme and gimbal camera of v back
// into c so they can be saved. Vector cameras leave the camera section
// untouched.
func (c *Config) Capture(v *view.View) {
	c.View.ShowAxes = v.ShowAxes()
	c.View.ShowScaleMarkers = v.ShowScaleMarkers()
	c.View.ScaleProportional = v.ShowScaleProportional()
	c.View.ShowCrosshairs = v.ShowCrosshairs()
	c.View.ShowEdges = v.ShowEdges()
	c.View.ShowFaces = v.ShowFaces()
	c.View.UseShaders = v.UseShaders()
	c.View.ShowAuxAxes = v.ShowAuxAxes()
	x, y, z := v.AuxAxes()
	c.View.AuxOffset = [3]float64{x, y, z}

	if s := v.ColorScheme(); s != nil {
		c.ColorScheme.Name = s.Name()
	}

	cam := v.Camera()
	if g, ok := cam.Gimbal(); ok {
		c.Camera.Projection = cam.Projection.String()
		c.Camera.FOV = cam.FOV
		c.Camera.Rotation = [3]float64{g.Rotation.X, g.Rotation.Y, g.Rotation.Z}
		c.Camera.Distance = g.Distance
	}
}
