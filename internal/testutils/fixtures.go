// Package testutils provides shared fixtures for objshell tests: the annotated-singleton test
// types and a fully wired command set.
package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"objshell/internal/coerce"
	"objshell/internal/commands"
	"objshell/internal/commands/builtin"
	"objshell/internal/entity"
	"objshell/internal/registry"
	"objshell/pkg/objtypes"
)

// TestAnnotatedSingletonImpl has a single one-argument constructor.
type TestAnnotatedSingletonImpl struct {
	Name string
}

// Identification returns the name.
func (s *TestAnnotatedSingletonImpl) Identification() string {
	return s.Name
}

// TestAnotherAnnotatedSingletonImpl has one- and two-argument constructors.
type TestAnotherAnnotatedSingletonImpl struct {
	Name  string
	Value float64
}

// Identification returns the name.
func (s *TestAnotherAnnotatedSingletonImpl) Identification() string {
	return s.Name
}

func another(receiver any) (*TestAnotherAnnotatedSingletonImpl, error) {
	s, ok := receiver.(*TestAnotherAnnotatedSingletonImpl)
	if !ok {
		return nil, fmt.Errorf("receiver %T is not a TestAnotherAnnotatedSingletonImpl: %w", receiver, objtypes.ErrAccessDenied)
	}
	return s, nil
}

// RegisterTestTypes registers both test types with types.
func RegisterTestTypes(types *registry.Registry) error {
	err := types.Register("TestAnnotatedSingletonImpl",
		[]registry.Callable{
			registry.NewConstructor(func(args []any) (any, error) {
				return &TestAnnotatedSingletonImpl{Name: args[0].(string)}, nil
			}, objtypes.KindString),
		}, nil)
	if err != nil {
		return err
	}

	return types.Register("TestAnotherAnnotatedSingletonImpl",
		[]registry.Callable{
			registry.NewConstructor(func(args []any) (any, error) {
				return &TestAnotherAnnotatedSingletonImpl{Name: args[0].(string)}, nil
			}, objtypes.KindString),
			registry.NewConstructor(func(args []any) (any, error) {
				return &TestAnotherAnnotatedSingletonImpl{Name: args[0].(string), Value: args[1].(float64)}, nil
			}, objtypes.KindString, objtypes.KindFloat),
		},
		[]registry.Callable{
			registry.NewMethod("value", func(receiver any, _ []any) (any, error) {
				s, err := another(receiver)
				if err != nil {
					return nil, err
				}
				return s.Value, nil
			}),
			registry.NewMethod("scale", func(receiver any, args []any) (any, error) {
				s, err := another(receiver)
				if err != nil {
					return nil, err
				}
				s.Value *= args[0].(float64)
				return s.Value, nil
			}, objtypes.KindFloat),
			registry.NewMethod("scale", func(receiver any, args []any) (any, error) {
				s, err := another(receiver)
				if err != nil {
					return nil, err
				}
				s.Value = s.Value*args[0].(float64) + args[1].(float64)
				return s.Value, nil
			}, objtypes.KindFloat, objtypes.KindFloat),
			registry.NewMethod("fail", func(any, []any) (any, error) {
				return nil, fmt.Errorf("deliberate failure")
			}),
		})
}

// Fixture is a wired registry, entity store and command set with the builtins registered.
type Fixture struct {
	Types    *registry.Registry
	Entities *entity.Store
	Parsers  *coerce.Registry
	Env      builtin.Environment
	Commands *commands.Set
}

// NewFixture builds a Fixture with the test types registered.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	types := registry.New()
	require.NoError(t, RegisterTestTypes(types))
	entities := entity.NewStore()
	parsers := coerce.NewRegistry()
	env := builtin.NewEnvironment(types, entities, parsers)

	set := commands.NewSet()
	require.NoError(t, builtin.Register(set, env))

	return &Fixture{Types: types, Entities: entities, Parsers: parsers, Env: env, Commands: set}
}

// Publish stores e under category, failing the test on error.
func (f *Fixture) Publish(t *testing.T, category string, e objtypes.Entity) {
	t.Helper()
	_, err := f.Entities.Publish(category, e)
	require.NoError(t, err)
}
