package dispatch

import (
	"github.com/google/uuid"

	"objshell/internal/registry"
	"objshell/pkg/objtypes"
)

// Resolver finds callables in a type registry by name and arity and hands them to an Invoker.
type Resolver struct {
	types   *registry.Registry
	invoker *Invoker
}

// NewResolver creates a resolver over types.
func NewResolver(types *registry.Registry, invoker *Invoker) *Resolver {
	return &Resolver{types: types, invoker: invoker}
}

// Construct invokes the constructor of typeName taking len(raw) arguments. Successful
// results carry typeName as their category.
func (r *Resolver) Construct(typeName string, raw []string) *objtypes.InvocationResult {
	if _, ok := r.types.Get(typeName); !ok {
		return unresolved("unknown type %s", typeName)
	}
	c, ok := r.types.ResolveConstructor(typeName, len(raw))
	if !ok {
		return unresolved("type %s has no constructor taking %d arguments", typeName, len(raw))
	}
	result := r.invoker.Invoke(c, nil, raw)
	if result.OK() {
		return result.WithCategory(typeName)
	}
	return result
}

// Call invokes method on receiver, an instance of typeName.
func (r *Resolver) Call(typeName, method string, receiver any, raw []string) *objtypes.InvocationResult {
	if _, ok := r.types.Get(typeName); !ok {
		return unresolved("unknown type %s", typeName)
	}
	c, ok := r.types.ResolveMethod(typeName, method, len(raw))
	if !ok {
		return unresolved("type %s has no method %s taking %d arguments", typeName, method, len(raw))
	}
	return r.invoker.Invoke(c, receiver, raw)
}

func unresolved(format string, args ...any) *objtypes.InvocationResult {
	return objtypes.NotInvoked(objtypes.FailureResolution, format, args...).WithID(uuid.NewString())
}
