package resource

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry holds the list screens by name
type Registry struct {
	screens map[string]Screen
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{screens: make(map[string]Screen)}
}

// NewDefaultRegistry returns a registry holding DefaultScreens
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range DefaultScreens() {
		if err := r.Register(s); err != nil {
			panic(err) // static table
		}
	}
	return r
}

// Register adds a screen. Names are unique.
func (r *Registry) Register(s Screen) error {
	if err := checkScreen(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.screens[s.Name]; ok {
		return &Error{Code: ErrDuplicateScreen, Message: fmt.Sprintf("screen %s already registered", s.Name)}
	}
	r.screens[s.Name] = s
	log.Debug().
		Str("screen", s.Name).
		Str("endpoint", s.Endpoint).
		Int("columns", len(s.Columns)).
		Msg("registered list screen")
	return nil
}

// Get returns a screen by name
func (r *Registry) Get(name string) (Screen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.screens[name]
	if !ok {
		return Screen{}, &Error{Code: ErrScreenNotFound, Message: fmt.Sprintf("screen %s not registered", name)}
	}
	return s, nil
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.screens[name]
	return ok
}

// List returns every screen sorted by name
func (r *Registry) List() []Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Screen, 0, len(r.screens))
	for _, s := range r.screens {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Screen) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ByType returns the screens backed by one resource
func (r *Registry) ByType(t Type) []Screen {
	var out []Screen
	for _, s := range r.List() {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

func checkScreen(s Screen) error {
	switch {
	case s.Name == "":
		return &Error{Code: ErrInvalidScreen, Message: "screen name is required"}
	case !slices.Contains(Types, s.Type):
		return &Error{Code: ErrInvalidScreen, Message: fmt.Sprintf("screen %s: unknown resource %q", s.Name, s.Type)}
	case s.Endpoint == "":
		return &Error{Code: ErrInvalidScreen, Message: fmt.Sprintf("screen %s: endpoint is required", s.Name)}
	case len(s.Columns) == 0:
		return &Error{Code: ErrInvalidScreen, Message: fmt.Sprintf("screen %s: no columns", s.Name)}
	}
	for _, key := range s.Required {
		if _, ok := s.Filter(key); !ok {
			return &Error{Code: ErrInvalidScreen, Message: fmt.Sprintf("screen %s: required filter %s is not declared", s.Name, key)}
		}
	}
	for key := range s.Defaults {
		if _, ok := s.Filter(key); !ok {
			return &Error{Code: ErrInvalidScreen, Message: fmt.Sprintf("screen %s: default filter %s is not declared", s.Name, key)}
		}
	}
	return nil
}
