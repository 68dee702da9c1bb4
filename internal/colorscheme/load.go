package colorscheme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cadview/internal/logger"
)

// schemeFile is the on-disk layout. JSON files parse through the YAML
// decoder unchanged.
type schemeFile struct {
	Name      string            `yaml:"name"`
	Index     int               `yaml:"index"`
	ShowInGUI *bool             `yaml:"show-in-gui"`
	Colors    map[string]string `yaml:"colors"`
}

// Parse decodes a scheme file. Missing roles are inherited from base, or
// from the default scheme when base is nil.
func Parse(data []byte, base *Scheme) (*Scheme, error) {
	var f schemeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode color scheme: %w", err)
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, errors.New("decode color scheme: missing name")
	}

	colors := make(map[Role]Color, len(f.Colors))
	for key, hex := range f.Colors {
		role, ok := ParseRole(key)
		if !ok {
			logger.Debug("ignoring unknown color role",
				zap.String("scheme", f.Name),
				zap.String("key", key))
			continue
		}
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("color scheme %q role %s: %w", f.Name, key, err)
		}
		colors[role] = c
	}

	return New(f.Name, f.Index, colors, base), nil
}

// LoadFile reads and parses one scheme file.
func LoadFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read color scheme: %w", err)
	}
	s, err := Parse(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// IsSchemeFile reports whether path has a scheme file extension.
func IsSchemeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDir registers every scheme file in dir. Files that fail to load are
// skipped; their errors are joined into the returned error.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read color scheme dir: %w", err)
	}

	var (
		loaded int
		errs   []error
	)
	for _, e := range entries {
		if e.IsDir() || !IsSchemeFile(e.Name()) {
			continue
		}
		s, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("skipping color scheme file", zap.Error(err))
			errs = append(errs, err)
			continue
		}
		r.Register(s)
		loaded++
	}

	logger.Info("color schemes loaded",
		zap.String("dir", dir),
		zap.Int("count", loaded))

	return loaded, errors.Join(errs...)
}
