package dispatcher

import (
	"maps"
	"slices"
	"sync"

	"github.com/dshills/listedit/internal/dispatcher/handler"
)

// Registry maps command names to handlers. A later registration for the
// same name replaces the earlier one.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]handler.Handler)}
}

func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// RegisterNamespace registers h under every name in h.Actions().
func (r *Registry) RegisterNamespace(h handler.NamespaceHandler) {
	adapter := namespaceAdapter{h}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range h.Actions() {
		r.handlers[name] = adapter
	}
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler for name, or nil.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Actions returns every registered command name, sorted.
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.handlers))
}
