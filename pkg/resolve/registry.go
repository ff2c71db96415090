package resolve

import (
	"fmt"
	"sync"
)

// Registry stores template sources in registration order. The application
// source is conventionally registered first, followed by component sources in
// mount order; resolution precedence follows that order. Registration happens
// during application setup, after which the registry is read-only.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
	names   map[string]struct{}
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]struct{}),
	}
}

// Register appends a source to the ordered search list. Duplicate names return
// an error.
func (r *Registry) Register(src Source) error {
	if src == nil {
		return fmt.Errorf("resolve: source is required")
	}
	name := src.Name()
	if name == "" {
		return fmt.Errorf("resolve: source name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return fmt.Errorf("resolve: source %q already registered", name)
	}

	r.names[name] = struct{}{}
	r.sources = append(r.sources, src)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(src Source) {
	if err := r.Register(src); err != nil {
		panic(err)
	}
}

// Sources returns the registered sources in registration order. The returned
// slice is a copy, so callers can iterate and restart freely.
func (r *Registry) Sources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Has reports whether a source is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sources)
}
