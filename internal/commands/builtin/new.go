package builtin

import (
	"objshell/internal/commands"
	"objshell/internal/grammar"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// typeNames lists the registered type names starting with a prefix.
func typeNames(env Environment) grammar.Candidates {
	return grammar.CandidatesFunc(func(prefix string) []string {
		matches := env.Types.MatchTypeNamesByPrefix(prefix)
		names := make([]string, len(matches))
		for i, d := range matches {
			names[i] = d.Name
		}
		return names
	})
}

// NewConstructCommand creates "new <Type>( args )". Constructed values are published by the
// caller.
func NewConstructCommand(env Environment) *commands.Command {
	call := grammar.NewCall(grammar.NewReference(typeNames(env)), env.Types.ConstructorArities, env.delimiter())

	return &commands.Command{
		Name:       "new",
		Summary:    "Construct an instance of a registered type",
		Usage:      "new <Type>( <arg>, ... )",
		Key:        commands.NewLiteralKey("new"),
		Params:     grammar.NewSequence(parser.Space, call),
		Constructs: true,
		Run: func(inv commands.Invocation) *objtypes.InvocationResult {
			expr := inv.Args.At(0).(grammar.CallExpr)
			return env.Resolver.Construct(expr.Name, expr.Args)
		},
	}
}
