// Package registry resolves metric implementation references to factories.
//
// The registry is an explicit map and nothing else: a reference either was
// registered or resolution fails. No dynamic loading, no fallbacks, no
// fuzzy matching. This keeps the set of runnable implementations auditable
// in one place.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jeanremacle/benchmark-framework/internal/metric"
	"github.com/jeanremacle/benchmark-framework/internal/model"
	"github.com/jeanremacle/benchmark-framework/internal/schema"
)

// Registry maps implementation references to metric factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]metric.Factory
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]metric.Factory)}
}

// NewDefault returns a registry seeded with the built-in metrics.
func NewDefault() *Registry {
	r := New()
	for ref, factory := range metric.Builtins() {
		r.MustRegister(ref, factory)
	}
	return r
}

// Register adds a factory under the given reference. The reference must
// have the dotted shape documents use, the factory must be non-nil, and
// re-registering a reference is an error.
func (r *Registry) Register(ref string, factory metric.Factory) error {
	if !schema.IsImplRef(ref) {
		return fmt.Errorf("invalid implementation reference %q: must be dotted, like \"metrics.ExecutionTime\"", ref)
	}
	if factory == nil {
		return fmt.Errorf("nil factory for implementation reference %q", ref)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[ref]; exists {
		return fmt.Errorf("implementation reference %q already registered", ref)
	}
	r.factories[ref] = factory
	return nil
}

// MustRegister is Register that panics on error. For package init and
// built-in seeding, where a failure is a programming error.
func (r *Registry) MustRegister(ref string, factory metric.Factory) {
	if err := r.Register(ref, factory); err != nil {
		panic(err)
	}
}

// Resolve returns the factory registered under ref. Resolution fails
// closed: an unknown reference is an error naming the reference.
func (r *Registry) Resolve(ref string) (metric.Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[ref]
	if !ok {
		return nil, fmt.Errorf("cannot resolve metric implementation %q: not registered", ref)
	}
	return factory, nil
}

// Build resolves the definition's implementation reference and constructs
// the metric.
func (r *Registry) Build(def model.MetricDefinition) (metric.Metric, error) {
	factory, err := r.Resolve(def.ImplRef)
	if err != nil {
		return nil, err
	}
	m, err := factory(def)
	if err != nil {
		return nil, fmt.Errorf("constructing metric %q from %q: %w", def.ID, def.ImplRef, err)
	}
	return m, nil
}

// Has reports whether ref is registered.
func (r *Registry) Has(ref string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[ref]
	return ok
}

// Names returns the registered references in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for ref := range r.factories {
		names = append(names, ref)
	}
	sort.Strings(names)
	return names
}
