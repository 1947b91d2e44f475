// Package function provides the pluggable function-call protocol:
// registered callables a CallExpression can invoke, each guarded by an
// argument-arity/keyword specification computed once at registration.
package function

import (
	"sync"

	"github.com/kaptinlin/fluent-go/pkg/errors"
	"github.com/kaptinlin/fluent-go/pkg/value"
)

// Func is a callable a CallExpression may invoke. Positional and kwargs
// hold already-resolved Values.
type Func func(positional []value.Value, kwargs map[string]value.Value) (value.Value, error)

// ArgSpec describes the calling convention a Func expects, in the same
// shape Python's introspection would compute: a positional arity (or
// "any", for variadic functions) and a set of allowed keyword names (or
// "any").
type ArgSpec struct {
	Positional    int
	AnyPositional bool
	Kwargs        map[string]bool
	AnyKwargs     bool
}

// NewArgSpec builds a fixed-arity spec: exactly n positional arguments, and
// keyword arguments limited to the named ones (each of them optional).
func NewArgSpec(positional int, kwargs ...string) ArgSpec {
	set := make(map[string]bool, len(kwargs))
	for _, k := range kwargs {
		set[k] = true
	}
	return ArgSpec{Positional: positional, Kwargs: set}
}

// Match validates args/kwargs against spec, returning the native-style
// TypeError the spec requires on mismatch.
func Match(name string, positional []value.Value, kwargs map[string]value.Value, spec ArgSpec) error {
	if !spec.AnyKwargs {
		for k := range kwargs {
			if !spec.Kwargs[k] {
				return errors.NewTypeError("%s() got an unexpected keyword argument '%s'", name, k)
			}
		}
	}
	if !spec.AnyPositional && spec.Positional != len(positional) {
		return errors.NewTypeError("%s() takes %d positional arguments but %d was given",
			name, spec.Positional, len(positional))
	}
	return nil
}

// Entry is a registered function plus its calling convention.
type Entry struct {
	Fn   Func
	Spec ArgSpec
}

// Registry manages function registration and lookup, mirroring the
// mutex-guarded map shape used for the store's other registries.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]Entry
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]Entry)}
}

// NewDefaultRegistry builds a Registry seeded with the built-in functions.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, entry := range defaultFunctions {
		r.functions[name] = entry
	}
	return r
}

// Register adds or replaces a function.
func (r *Registry) Register(name string, fn Func, spec ArgSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = Entry{Fn: fn, Spec: spec}
}

// Get retrieves a function by name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.functions[name]
	return e, ok
}

// Clone copies the registry, for a Context that wants its own mutable copy
// seeded from a shared default set.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	for k, v := range r.functions {
		out.functions[k] = v
	}
	return out
}

// Merge overlays other's entries onto r, letting callers layer custom
// functions over the defaults.
func (r *Registry) Merge(other map[string]Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range other {
		r.functions[k] = v
	}
}
