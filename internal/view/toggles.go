package view

// SetShowAxes toggles the reference axes. Scale markers and the corner
// triad are drawn only with the axes.
func (v *View) SetShowAxes(on bool) { v.showAxes = on }

// ShowAxes reports whether the reference axes are drawn.
func (v *View) ShowAxes() bool { return v.showAxes }

// SetShowAuxAxes toggles the auxiliary axes.
func (v *View) SetShowAuxAxes(on bool) { v.showAuxAxes = on }

// ShowAuxAxes reports whether the auxiliary axes are drawn.
func (v *View) ShowAuxAxes() bool { return v.showAuxAxes }

// SetShowEdges toggles edge drawing in the renderer.
func (v *View) SetShowEdges(on bool) { v.showEdges = on }

// ShowEdges reports whether edges are drawn.
func (v *View) ShowEdges() bool { return v.showEdges }

// SetShowFaces toggles face drawing in the renderer.
func (v *View) SetShowFaces(on bool) { v.showFaces = on }

// ShowFaces reports whether faces are drawn.
func (v *View) ShowFaces() bool { return v.showFaces }

// SetShowCrosshairs toggles the crosshairs. They are drawn only under a
// gimbal camera.
func (v *View) SetShowCrosshairs(on bool) { v.showCrosshairs = on }

// ShowCrosshairs reports whether crosshairs are requested.
func (v *View) ShowCrosshairs() bool { return v.showCrosshairs }

// SetShowScaleMarkers toggles the scale markers on the axes.
func (v *View) SetShowScaleMarkers(on bool) { v.showScaleMarkers = on }

// ShowScaleMarkers reports whether scale markers are requested.
func (v *View) ShowScaleMarkers() bool { return v.showScaleMarkers }

// SetShowScaleProportional gives all axes the same marker scale.
func (v *View) SetShowScaleProportional(on bool) { v.proportional = on }

// ShowScaleProportional reports whether markers are proportional.
func (v *View) ShowScaleProportional() bool { return v.proportional }
