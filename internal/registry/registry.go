package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/vk/modelgen/internal/builder"
	"github.com/vk/modelgen/internal/diag"
)

// Module is the interface that all kernel modules implement to be registered.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the Builder of every known module type.
type Registry struct {
	builders map[string]builder.Builder
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{builders: make(map[string]builder.Builder)}
}

// Register binds typeName to b. Registering the same builder under the same
// name again is a no-op; any other re-registration fails with
// diag.ErrDuplicateType.
func (r *Registry) Register(typeName string, b builder.Builder) error {
	if typeName == "" {
		return fmt.Errorf("cannot register a builder without a type name")
	}
	if b == nil {
		return fmt.Errorf("cannot register a nil builder for type %q", typeName)
	}
	if existing, ok := r.builders[typeName]; ok {
		if sameBuilder(existing, b) {
			return nil
		}
		return fmt.Errorf("%w: %q is already registered with a different builder", diag.ErrDuplicateType, typeName)
	}
	r.builders[typeName] = b
	return nil
}

func sameBuilder(a, b builder.Builder) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// Get returns the Builder registered for typeName.
func (r *Registry) Get(typeName string) (builder.Builder, bool) {
	b, ok := r.builders[typeName]
	return b, ok
}

// Has reports whether typeName is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.builders[typeName]
	return ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterAll registers every module in order and stops at the first error.
func (r *Registry) RegisterAll(modules ...Module) error {
	for _, mod := range modules {
		if err := mod.Register(r); err != nil {
			return fmt.Errorf("registering %T: %w", mod, err)
		}
	}
	return nil
}
