package colorscheme

import "strings"

// Role names one colored element of the view.
type Role int

const (
	Background Role = iota
	Axes
	AxisX
	AxisY
	AxisZ
	Crosshair
	FaceFront
	FaceBack
	Face2D
	EdgeFront
	EdgeBack
	Edge2D
	Highlight
	Background2

	roleCount
)

var roleKeys = [roleCount]string{
	Background:  "background",
	Axes:        "axes-color",
	AxisX:       "axis-x",
	AxisY:       "axis-y",
	AxisZ:       "axis-z",
	Crosshair:   "crosshair",
	FaceFront:   "face-front",
	FaceBack:    "face-back",
	Face2D:      "face-2d",
	EdgeFront:   "edge-front",
	EdgeBack:    "edge-back",
	Edge2D:      "edge-2d",
	Highlight:   "highlight",
	Background2: "background-2",
}

// Keys used by older scheme files.
var roleAliases = map[string]Role{
	"axes":               Axes,
	"opencsg-face-front": FaceFront,
	"opencsg-face-back":  FaceBack,
	"cgal-face-front":    FaceFront,
	"cgal-face-back":     FaceBack,
	"cgal-face-2d":       Face2D,
	"cgal-face-2d-color": Face2D,
	"cgal-edge-front":    EdgeFront,
	"cgal-edge-back":     EdgeBack,
	"cgal-edge-2d":       Edge2D,
	"cgal-edge-2d-color": Edge2D,
	"background2":        Background2,
	"background-stop":    Background2,
	"crosshair-color":    Crosshair,
	"highlight-color":    Highlight,
	"x-axis":             AxisX,
	"y-axis":             AxisY,
	"z-axis":             AxisZ,
}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// String returns the key used for the role in scheme files.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleKeys[r]
}

// ParseRole maps a scheme file key to a role.
func ParseRole(key string) (Role, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range roleKeys {
		if k == key {
			return Role(i), true
		}
	}
	r, ok := roleAliases[key]
	return r, ok
}
