package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a backend rendering frames of width x height pixels.
// Factories are registered via Register() and called by New().
type Factory func(width, height int) (Backend, error)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register registers a backend factory with the given name.
// This function is typically called from init() in backend packages:
//
//	func init() {
//	    backend.Register("raster", func(w, h int) (backend.Backend, error) {
//	        return New(w, h), nil
//	    })
//	}
//
// Register panics if factory is nil or if a backend with the same name is
// already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// New creates a backend instance by name.
//
// Returns an error wrapping ErrUnknownBackend if the backend is not
// registered. The error message includes a hint about forgotten imports.
func New(name string, width, height int) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("backend: invalid size %dx%d", width, height)
	}
	b, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend: create %q: %w", name, err)
	}
	return b, nil
}

// MustNew creates a backend instance by name, panicking on error.
func MustNew(name string, width, height int) Backend {
	b, err := New(name, width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns a sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}
