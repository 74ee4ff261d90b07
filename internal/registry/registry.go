// Package registry indexes the types exposed to the console: their constructors and methods,
// keyed by name and disambiguated by argument count.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"objshell/internal/logger"
)

// ErrConflict is returned when two callables of the same kind share name and arity.
var ErrConflict = errors.New("callable conflict")

// Registry maps type names to descriptors. Registration takes the write lock; lookups
// share the read lock. Stored descriptors are copies and never change after registration.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]TypeDescriptor
	logger *log.Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		types:  make(map[string]TypeDescriptor),
		logger: logger.NewStyledLogger("TypeRegistry"),
	}
}

// Register validates and stores the descriptor for name, replacing any previous descriptor
// of that name. A rejected registration leaves the registry unchanged.
func (r *Registry) Register(name string, constructors, methods []Callable) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if err := validate(name, constructors, false); err != nil {
		return err
	}
	if err := validate(name, methods, true); err != nil {
		return err
	}

	desc := TypeDescriptor{Name: name, Constructors: constructors, Methods: methods}.clone()

	r.mu.Lock()
	_, replaced := r.types[name]
	r.types[name] = desc
	r.mu.Unlock()

	r.logger.Debug("Type registered", "type", name,
		"constructors", len(constructors), "methods", len(methods), "replaced", replaced)
	return nil
}

func validate(typeName string, callables []Callable, methods bool) error {
	type signature struct {
		name  string
		arity int
	}
	seen := make(map[signature]bool, len(callables))
	for _, c := range callables {
		if c.Invoke == nil {
			return fmt.Errorf("type %s: %s has no invoker", typeName, c.Signature(typeName))
		}
		if methods && strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("type %s: method without a name", typeName)
		}
		key := signature{name: c.Name, arity: c.Arity()}
		if !methods {
			key.name = ""
		}
		if seen[key] {
			kind := "constructors"
			if methods {
				kind = "methods named " + c.Name
			}
			return fmt.Errorf("type %s: two %s take %d arguments: %w", typeName, kind, c.Arity(), ErrConflict)
		}
		seen[key] = true
	}
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.types[name]
	if !ok {
		return TypeDescriptor{}, false
	}
	return desc.clone(), true
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// MatchTypeNamesByPrefix returns the descriptors whose name starts with prefix, sorted by name.
func (r *Registry) MatchTypeNamesByPrefix(prefix string) []TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []TypeDescriptor
	for name, desc := range r.types {
		if strings.HasPrefix(name, prefix) {
			out = append(out, desc.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolveConstructor returns the constructor of typeName taking argc arguments.
func (r *Registry) ResolveConstructor(typeName string, argc int) (Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.types[typeName]
	if !ok {
		return Callable{}, false
	}
	for _, c := range desc.Constructors {
		if c.Arity() == argc {
			return c.clone(), true
		}
	}
	return Callable{}, false
}

// ResolveMethod returns the method of typeName named method taking argc arguments.
func (r *Registry) ResolveMethod(typeName, method string, argc int) (Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.types[typeName]
	if !ok {
		return Callable{}, false
	}
	for _, m := range desc.Methods {
		if m.Name == method && m.Arity() == argc {
			return m.clone(), true
		}
	}
	return Callable{}, false
}

// ConstructorArities returns the argument counts accepted by the constructors of typeName.
func (r *Registry) ConstructorArities(typeName string) []int {
	desc, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	return arities(desc.Constructors, func(Callable) bool { return true })
}

// MethodArities returns the argument counts accepted by method on typeName.
func (r *Registry) MethodArities(typeName, method string) []int {
	desc, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	return arities(desc.Methods, func(c Callable) bool { return c.Name == method })
}

// MatchMethodNamesByPrefix returns the distinct method names of typeName starting with prefix.
func (r *Registry) MatchMethodNamesByPrefix(typeName, prefix string) []string {
	desc, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	var names []string
	for _, m := range desc.Methods {
		if strings.HasPrefix(m.Name, prefix) && !slices.Contains(names, m.Name) {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

func arities(callables []Callable, keep func(Callable) bool) []int {
	var out []int
	for _, c := range callables {
		if keep(c) {
			out = append(out, c.Arity())
		}
	}
	sort.Ints(out)
	return out
}
