// Package render provides interchangeable Markdown rendering backends and
// the selection logic that falls back to another backend when the requested
// one is unavailable.
//
// Each backend reconciles its library's return shape into a single
// text-to-HTML function. Backends compiled out with the nogoldmark or
// noblackfriday build tags report ErrUnavailable from their constructor.
package render

import (
	"errors"
	"fmt"
)

// Backend names known to the default registry.
const (
	Goldmark    = "goldmark"
	Blackfriday = "blackfriday"
	Minimal     = "minimal"
)

// Sentinel errors for backend construction and rendering.
var (
	ErrUnavailable = errors.New("markdown backend unavailable")
	ErrNoBackend   = errors.New("no markdown backend available")
	ErrRender      = errors.New("markdown rendering failed")
)

// Backend is a selected renderer. It is immutable once constructed.
type Backend struct {
	Name string

	// EscapeUnderscores is set for renderers that read raw underscores in
	// generated link labels as emphasis.
	EscapeUnderscores bool

	render func(text string) (string, error)
}

// NewBackend wraps a text-to-HTML function as a Backend, for registering
// renderers outside this package.
func NewBackend(name string, escapeUnderscores bool, fn func(text string) (string, error)) *Backend {
	return &Backend{Name: name, EscapeUnderscores: escapeUnderscores, render: fn}
}

// Render converts Markdown text to HTML. Failures wrap ErrRender.
func (b *Backend) Render(text string) (string, error) {
	out, err := b.render(text)
	if err != nil {
		return "", fmt.Errorf("%w (%s): %v", ErrRender, b.Name, err)
	}
	return out, nil
}

// Constructor builds a backend, or returns an error wrapping ErrUnavailable
// when its underlying renderer cannot be loaded.
type Constructor func() (*Backend, error)

type entry struct {
	name  string
	build Constructor
}

// Registry is an ordered set of named backend constructors.
// It is built once per session and read-only afterwards.
type Registry struct {
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns the built-in registry: goldmark, blackfriday, minimal.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Goldmark, newGoldmark)
	r.Register(Blackfriday, newBlackfriday)
	r.Register(Minimal, newMinimal)
	return r
}

// Register adds a constructor. Registering an existing name replaces its
// constructor and keeps its position.
func (r *Registry) Register(name string, build Constructor) {
	for i := range r.entries {
		if r.entries[i].name == name {
			r.entries[i].build = build
			return
		}
	}
	r.entries = append(r.entries, entry{name: name, build: build})
}

// Names returns registered names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	return names
}

// Has reports whether a name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.find(name)
	return ok
}

// Probe constructs the named backend without substitution and returns the
// constructor's error, or an ErrUnavailable error for unknown names.
func (r *Registry) Probe(name string) error {
	e, ok := r.find(name)
	if !ok {
		return fmt.Errorf("%w: unknown backend %q", ErrUnavailable, name)
	}
	b, err := e.build()
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, name)
	}
	return nil
}

// Select constructs the requested backend. When it is unknown or
// unavailable, every other entry is tried in registry order and the first
// that constructs is returned; its Name tells the caller a substitution
// happened. ErrNoBackend is returned when nothing constructs.
func (r *Registry) Select(name string) (*Backend, error) {
	if e, ok := r.find(name); ok {
		if b, err := e.build(); err == nil && b != nil {
			return b, nil
		}
	}
	for _, e := range r.entries {
		if e.name == name {
			continue
		}
		if b, err := e.build(); err == nil && b != nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: requested %q", ErrNoBackend, name)
}

func (r *Registry) find(name string) (entry, bool) {
	for _, e := range r.entries {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}
