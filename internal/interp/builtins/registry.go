// Package builtins provides the registry and implementations of SOC's
// ordinary built-in functions. Special forms keep their handlers in the
// evaluator (they need raw AST access) but are marked here so the registry
// is the single table of callable names.
package builtins

import (
	"sort"
	"sync"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

// Kind distinguishes ordinary builtins (strict argument values) from
// special forms (lazy arguments, handled by the evaluator).
type Kind int

const (
	// KindOrdinary builtins receive evaluated argument values.
	KindOrdinary Kind = iota
	// KindSpecialForm names are dispatched by the evaluator with raw AST.
	KindSpecialForm
)

// Category groups builtins for introspection and documentation.
type Category string

// Builtin categories.
const (
	CategoryMath    Category = "math"
	CategoryTensor  Category = "tensor"
	CategoryComplex Category = "complex"
	CategoryString  Category = "string"
	CategoryGraph   Category = "graph"
	CategoryIO      Category = "io"
	CategoryControl Category = "control"
)

// Info holds the registry metadata of one function name.
type Info struct {
	Name        string
	Kind        Kind
	Category    Category
	Description string

	// Builtin is the callable value for ordinary functions; nil for
	// special forms.
	Builtin *runtime.Builtin
}

// Registry is the table of built-in function names of one interpreter. Each
// interpreter builds and populates its own at creation, so registries are
// not shared between interpreters, and entries can still be added or
// replaced afterwards (pkg/soc registers host functions this way). The lock
// guards registration against concurrent lookups.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]*Info)}
}

// Register adds an ordinary builtin. Arity is a fixed count or
// runtime.Variadic. Registering an existing name replaces it.
func (r *Registry) Register(name string, arity int, category Category, description string, fn func([]runtime.Value) (runtime.Value, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = &Info{
		Name:        name,
		Kind:        KindOrdinary,
		Category:    category,
		Description: description,
		Builtin:     &runtime.Builtin{Name: name, Arity: arity, Fn: fn},
	}
}

// MarkSpecialForm records a special-form name. The evaluator owns the
// handler; the registry only answers name queries.
func (r *Registry) MarkSpecialForm(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[name] = &Info{Name: name, Kind: KindSpecialForm, Category: CategoryControl}
}

// Lookup finds the callable value of an ordinary builtin.
func (r *Registry) Lookup(name string) (*runtime.Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[name]
	if !ok || info.Kind != KindOrdinary {
		return nil, false
	}
	return info.Builtin, true
}

// Get retrieves the full Info for a name.
func (r *Registry) Get(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[name]
	return info, ok
}

// Has checks whether a name is registered (either kind).
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[name]
	return ok
}

// IsSpecialForm checks whether a name is registered as a special form.
func (r *Registry) IsSpecialForm(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[name]
	return ok && info.Kind == KindSpecialForm
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}
