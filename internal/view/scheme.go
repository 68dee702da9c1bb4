package view

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/logger"
)

// SetColorScheme installs s. A nil scheme installs the registry default.
func (v *View) SetColorScheme(s *colorscheme.Scheme) {
	if s == nil {
		s = v.registry.Default()
	}
	v.install(s)
}

// SetColorSchemeByName installs the named scheme. Unknown names install
// the default scheme and return colorscheme.ErrSchemeNotFound; the view
// stays usable.
func (v *View) SetColorSchemeByName(name string) error {
	s, err := v.registry.Resolve(name)
	if err != nil {
		logger.Warn("color scheme not found, using default",
			zap.String("name", name),
			zap.String("default", s.Name()))
	}
	v.install(s)
	return err
}

// ColorScheme returns the installed scheme.
func (v *View) ColorScheme() *colorscheme.Scheme {
	return v.scheme
}

// UpdateColorScheme picks up a scheme re-registered under the installed
// scheme's name. It does nothing when the registry still holds the same
// scheme.
func (v *View) UpdateColorScheme() {
	s, ok := v.registry.Lookup(v.scheme.Name())
	if !ok {
		return
	}
	v.install(s)
}

func (v *View) install(s *colorscheme.Scheme) {
	if s == v.scheme {
		return
	}
	v.scheme = s
	logger.Debug("color scheme installed", zap.String("name", s.Name()))
	if v.renderer != nil {
		v.renderer.SetColorScheme(s)
	}
}
