package colorscheme

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/logger"
)

// Registry maps scheme names to schemes. It is safe for concurrent use; the
// directory watcher registers reloaded schemes from its own goroutine.
type Registry struct {
	mu      sync.RWMutex
	schemes map[string]*Scheme
}

// NewRegistry returns a registry holding the built-in schemes.
func NewRegistry() *Registry {
	r := &Registry{schemes: make(map[string]*Scheme)}
	for _, s := range builtins() {
		r.schemes[s.name] = s
	}
	return r
}

// Register installs s under its name, replacing any previous scheme of the
// same name. The replaced *Scheme stays valid for its holders.
func (r *Registry) Register(s *Scheme) {
	if s == nil || s.name == "" {
		return
	}
	r.mu.Lock()
	_, replaced := r.schemes[s.name]
	r.schemes[s.name] = s
	r.mu.Unlock()

	logger.Debug("color scheme registered",
		zap.String("name", s.name),
		zap.Bool("replaced", replaced))
}

// Lookup finds a scheme by exact name, then case-insensitively. Among names
// differing only in case the first in Names order wins.
func (r *Registry) Lookup(name string) (*Scheme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.schemes[name]; ok {
		return s, true
	}
	for _, s := range r.sorted() {
		if strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return nil, false
}

// Resolve finds a scheme by name. Unknown names yield the default scheme
// together with ErrSchemeNotFound.
func (r *Registry) Resolve(name string) (*Scheme, error) {
	if s, ok := r.Lookup(name); ok {
		return s, nil
	}
	return r.Default(), fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
}

// Default returns the scheme registered under DefaultName.
func (r *Registry) Default() *Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.schemes[DefaultName]; ok {
		return s
	}
	return cornfield
}

// Names lists registered schemes ordered by index, then name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	list := r.sorted()
	r.mu.RUnlock()

	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.name
	}
	return names
}

// sorted returns the schemes ordered by index, then name. The caller holds
// r.mu.
func (r *Registry) sorted() []*Scheme {
	list := make([]*Scheme, 0, len(r.schemes))
	for _, s := range r.schemes {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].index != list[j].index {
			return list[i].index < list[j].index
		}
		return list[i].name < list[j].name
	})
	return list
}
