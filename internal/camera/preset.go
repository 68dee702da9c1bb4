package camera

import (
	"fmt"
	"strings"

	"github.com/Faultbox/cadview/pkg/math"
)

// Preset is a standard viewing direction.
type Preset int

const (
	PresetDiagonal Preset = iota
	PresetTop
	PresetBottom
	PresetLeft
	PresetRight
	PresetFront
	PresetBack
)

var presetNames = [...]string{"diagonal", "top", "bottom", "left", "right", "front", "back"}

var presetRotations = [...]math.Vec3d{
	PresetDiagonal: DefaultRotation,
	PresetTop:      {X: 90},
	PresetBottom:   {X: 270},
	PresetLeft:     {Z: 90},
	PresetRight:    {Z: 270},
	PresetFront:    {},
	PresetBack:     {Z: 180},
}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// Rotation returns the gimbal rotation of the preset.
func (p Preset) Rotation() math.Vec3d {
	if p < 0 || int(p) >= len(presetRotations) {
		return DefaultRotation
	}
	return presetRotations[p]
}

// ParsePreset looks a preset up by name, ignoring case.
func ParsePreset(s string) (Preset, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return PresetDiagonal, fmt.Errorf("unknown view %q (want one of %s)", s, strings.Join(presetNames[:], ", "))
}

// SetPreset turns the camera to look along a standard direction, keeping
// pivot and distance. Vector cameras are converted to gimbal first.
func (c *Camera) SetPreset(p Preset) {
	switch c.kind {
	case KindVector:
		*c = c.ToGimbal()
	case KindNone:
		c.ResetView()
	}
	c.gimbal.Rotation = p.Rotation()
}
