package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danl5/gofsmagent"
)

// DefaultName is the identifier used when a setup exposes a single
// machine and does not name it explicitly.
const DefaultName = "state_machine"

// New creates an empty registry.
func New() *Registry {
	return &Registry{adapters: map[string]*gofsmagent.Adapter{}}
}

// Registry maps instance names to adapters. It is shared by the
// transports and safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]*gofsmagent.Adapter
}

// Register stores the adapter under name. An existing adapter under the
// same name is overwritten.
func (r *Registry) Register(name string, adapter *gofsmagent.Adapter) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("register adapter, name is empty")
	}
	if adapter == nil {
		return fmt.Errorf("register adapter %q, adapter is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[name] = adapter
	return nil
}

// Lookup returns the adapter registered under name.
func (r *Registry) Lookup(name string) (*gofsmagent.Adapter, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("lookup adapter, name is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("no adapter registered under %q, register one with Register(%q, adapter) before use", name, name)
	}
	return adapter, nil
}

// Remove drops the adapter registered under name and reports whether one
// was present. Removing an absent name is not an error.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.adapters[name]
	delete(r.adapters, name)
	return ok
}

// Names returns the registered identifiers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
