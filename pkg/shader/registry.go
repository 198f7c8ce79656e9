package shader

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds pass definitions by name. It is created once at startup
// and handed to whatever assembles the passes; there is no package-level
// instance.
type Registry struct {
	mu     sync.RWMutex
	passes map[string]Definition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		passes: make(map[string]Definition),
	}
}

// NewDefaultRegistry creates a registry holding the built-in passes
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range []Definition{Copy(), Convolution(), Threshold(), Vignette()} {
		if err := r.Register(d); err != nil {
			// Built-ins are static; a failure here is a programming error.
			panic(fmt.Sprintf("failed to register built-in pass: %v", err))
		}
	}
	return r
}

// Register validates d and adds a copy of it
func (r *Registry) Register(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.passes[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePass, d.Name)
	}

	r.passes[d.Name] = d.Clone()
	return nil
}

// Get returns a copy of the named definition. Changes to the copy do not
// affect the registry.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.passes[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownPass, name)
	}
	return d.Clone(), nil
}

// Has reports whether a pass is registered under name
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.passes[name]
	return ok
}

// Names returns the registered pass names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.passes))
	for name := range r.passes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered passes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.passes)
}
