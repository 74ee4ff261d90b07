// Package builtin provides the commands objshell offers by default: constructing objects,
// calling methods on published entities, and inspecting types, entities and history.
package builtin

import (
	"fmt"

	"objshell/internal/coerce"
	"objshell/internal/commands"
	"objshell/internal/dispatch"
	"objshell/internal/entity"
	"objshell/internal/journal"
	"objshell/internal/parser"
	"objshell/internal/registry"
)

// Environment holds the collaborators the builtin commands work against.
type Environment struct {
	Types    *registry.Registry
	Entities *entity.Store
	Parsers  *coerce.Registry
	Resolver *dispatch.Resolver
	History  journal.Journal
	// ArgumentDelimiter separates call arguments; parser.Comma by default.
	ArgumentDelimiter parser.Delimiter
}

// NewEnvironment wires a resolver over types and parsers, and resolves type-named argument
// kinds through entities.
func NewEnvironment(types *registry.Registry, entities *entity.Store, parsers *coerce.Registry) Environment {
	parsers.SetFallback(entities.Resolve)
	return Environment{
		Types:             types,
		Entities:          entities,
		Parsers:           parsers,
		Resolver:          dispatch.NewResolver(types, dispatch.NewInvoker(parsers)),
		History:           journal.Nop{},
		ArgumentDelimiter: parser.Comma,
	}
}

func (env Environment) delimiter() parser.Delimiter {
	if env.ArgumentDelimiter.Sep == "" {
		return parser.Comma
	}
	return env.ArgumentDelimiter
}

// Register adds every builtin command to set.
func Register(set *commands.Set, env Environment) error {
	if env.History == nil {
		env.History = journal.Nop{}
	}
	builtins := []*commands.Command{
		NewConstructCommand(env),
		NewMethodCommand(env),
		NewTypesCommand(env),
		NewEntitiesCommand(env),
		NewShowCommand(env),
		NewHistoryCommand(env),
		NewHelpCommand(set),
	}
	for _, cmd := range builtins {
		if err := set.Register(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.Name, err)
		}
	}
	return nil
}
