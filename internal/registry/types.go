package registry

import (
	"fmt"
	"strings"

	"objshell/pkg/objtypes"
)

// InvokeFunc performs a call. receiver is nil for constructors; args are already coerced to
// the callable's argument kinds.
type InvokeFunc func(receiver any, args []any) (any, error)

// Callable describes one exposed constructor or method. Name is empty for constructors.
type Callable struct {
	Name     string
	ArgTypes []objtypes.Kind
	Invoke   InvokeFunc
}

// Arity returns the number of arguments.
func (c Callable) Arity() int {
	return len(c.ArgTypes)
}

// Signature renders the callable as name(kind, kind).
func (c Callable) Signature(typeName string) string {
	kinds := make([]string, len(c.ArgTypes))
	for i, k := range c.ArgTypes {
		kinds[i] = string(k)
	}
	name := c.Name
	if name == "" {
		name = typeName
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(kinds, ", "))
}

func (c Callable) clone() Callable {
	c.ArgTypes = append([]objtypes.Kind(nil), c.ArgTypes...)
	return c
}

// TypeDescriptor lists the exposed constructors and methods of one type.
type TypeDescriptor struct {
	Name         string
	Constructors []Callable
	Methods      []Callable
}

func (d TypeDescriptor) clone() TypeDescriptor {
	out := TypeDescriptor{
		Name:         d.Name,
		Constructors: make([]Callable, len(d.Constructors)),
		Methods:      make([]Callable, len(d.Methods)),
	}
	for i, c := range d.Constructors {
		out.Constructors[i] = c.clone()
	}
	for i, m := range d.Methods {
		out.Methods[i] = m.clone()
	}
	return out
}

// NewConstructor builds a constructor descriptor from fn, which receives the coerced arguments.
func NewConstructor(fn func(args []any) (any, error), kinds ...objtypes.Kind) Callable {
	return Callable{
		ArgTypes: kinds,
		Invoke: func(_ any, args []any) (any, error) {
			return fn(args)
		},
	}
}

// NewMethod builds a method descriptor.
func NewMethod(name string, fn InvokeFunc, kinds ...objtypes.Kind) Callable {
	return Callable{Name: name, ArgTypes: kinds, Invoke: fn}
}
