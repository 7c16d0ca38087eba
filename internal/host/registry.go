package host

import (
	"sync"
)

// Registry holds capability providers keyed by kind. Values are stored in
// registration order and are never inspected.
type Registry struct {
	mu        sync.RWMutex
	providers map[Kind][]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Kind][]any),
	}
}

// Register appends provider to the list for kind.
func (r *Registry) Register(kind Kind, provider any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[kind] = append(r.providers[kind], provider)
}

// Providers returns a copy of the providers registered for kind, or nil if
// there are none.
func (r *Registry) Providers(kind Kind) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.providers[kind]
	if len(list) == 0 {
		return nil
	}
	out := make([]any, len(list))
	copy(out, list)
	return out
}

// Len returns the number of providers registered for kind.
func (r *Registry) Len(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers[kind])
}
