// Package colorscheme holds the named color schemes used to draw the view.
//
// A Scheme is immutable once built. The Registry owns every scheme it has
// seen and never frees one: re-registering a name installs a new *Scheme
// while holders of the old pointer keep a valid value.
package colorscheme

import "errors"

// ErrSchemeNotFound is returned when a scheme name is not registered.
var ErrSchemeNotFound = errors.New("color scheme not found")

// Scheme is a named, immutable color table.
type Scheme struct {
	name   string
	index  int
	colors [roleCount]Color
}

// New builds a scheme. Roles absent from colors are taken from base; with a
// nil base they fall back to the built-in default scheme.
func New(name string, index int, colors map[Role]Color, base *Scheme) *Scheme {
	if base == nil {
		base = cornfield
	}
	s := &Scheme{name: name, index: index, colors: base.colors}
	for r, c := range colors {
		if r >= 0 && r < roleCount {
			s.colors[r] = c
		}
	}
	return s
}

// Name returns the scheme name.
func (s *Scheme) Name() string {
	return s.name
}

// Index returns the sort position of the scheme in listings.
func (s *Scheme) Index() int {
	return s.index
}

// Color returns the color for a role.
func (s *Scheme) Color(r Role) Color {
	if r < 0 || r >= roleCount {
		return Color{}
	}
	return s.colors[r]
}
