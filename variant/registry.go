package variant

import "sync"

// Registry is a concurrency-safe, mergeable [Dictionary].
type Registry struct {
	mu   sync.RWMutex
	dict Dictionary
}

// NewRegistry returns a registry holding the given dictionaries merged in
// order.
func NewRegistry(dicts ...Dictionary) *Registry {
	r := &Registry{}
	for _, d := range dicts {
		r.Add(d)
	}

	return r
}

// Default returns the shared process-wide registry. It is empty until
// dictionaries are added.
//
//nolint:gochecknoglobals
var Default = sync.OnceValue(func() *Registry { return NewRegistry() })

// Add deep-merges d into the registry.
func (r *Registry) Add(d Dictionary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dict = r.dict.Merge(d)
}

// Snapshot returns a copy of the registry's current dictionary.
func (r *Registry) Snapshot() Dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.dict.Merge(Dictionary{})
}

// Names returns the registered set names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.dict.Names()
}
