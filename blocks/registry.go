package blocks

import (
	"sort"
	"sync"
)

// Registry maps block type tags to factories for dynamic dispatch.
// Registering a new type tag is the only way the set of executable block
// kinds grows.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a Registry with all built-in block types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeTextInput, NewTextInput)
	r.Register(TypeNumberInput, NewNumberInput)
	r.Register(TypeTextOutput, NewTextOutput)
	r.Register(TypeNumberOutput, NewNumberOutput)
	r.Register(TypeMathOperation, NewMathOperation)
	r.Register(TypeTextJoin, NewTextJoin)
	return r
}

// Register adds a factory for a block type tag.
func (r *Registry) Register(typeTag string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeTag] = factory
}

// Get retrieves the factory for a block type tag.
func (r *Registry) Get(typeTag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typeTag]
	return f, ok
}

// List returns sorted type tags of all registered blocks.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
