package builtin

import (
	"objshell/internal/commands"
	"objshell/internal/grammar"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

const entityMarker = '.'

// methodGrammar is the call grammar for the methods of typeName.
func methodGrammar(env Environment, typeName string) *grammar.Sequence {
	names := grammar.CandidatesFunc(func(prefix string) []string {
		return env.Types.MatchMethodNamesByPrefix(typeName, prefix)
	})
	arities := func(method string) []int {
		return env.Types.MethodArities(typeName, method)
	}
	return grammar.NewSequence(parser.Space, grammar.NewCall(grammar.NewReference(names), arities, env.delimiter()))
}

// NewMethodCommand creates "<entity>.<method>( args )". The method grammar follows the type
// the addressed entity was published under.
func NewMethodCommand(env Environment) *commands.Command {
	key := commands.NewEntityKey(env.Entities, entityMarker)

	return &commands.Command{
		Name:    "method",
		Summary: "Call a method on a published entity",
		Usage:   "<entity>.<method>( <arg>, ... )",
		Key:     key,
		Scope: func(keyExpr string) *grammar.Sequence {
			record, ok := env.Entities.Lookup(key.Entity(keyExpr))
			if !ok {
				return nil
			}
			if _, ok := env.Types.Get(record.Category); !ok {
				return nil
			}
			return methodGrammar(env, record.Category)
		},
		Run: func(inv commands.Invocation) *objtypes.InvocationResult {
			record, ok := env.Entities.Lookup(key.Entity(inv.KeyExpression))
			if !ok {
				return objtypes.NotInvoked(objtypes.FailureResolution, "entity %s is gone", inv.KeyExpression)
			}
			expr := inv.Args.At(0).(grammar.CallExpr)
			return env.Resolver.Call(record.Category, expr.Name, record.Value, expr.Args)
		},
	}
}
