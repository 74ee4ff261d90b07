package builtin

import (
	"fmt"

	"objshell/internal/commands"
	"objshell/internal/grammar"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// TypeSummary describes a registered type for listing.
type TypeSummary struct {
	Name         string   `yaml:"name"`
	Constructors []string `yaml:"constructors,omitempty"`
	Methods      []string `yaml:"methods,omitempty"`
}

// EntitySummary describes a published entity for listing.
type EntitySummary struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

// NewTypesCommand creates "types", listing every registered type with its signatures.
func NewTypesCommand(env Environment) *commands.Command {
	return &commands.Command{
		Name:    "types",
		Summary: "List registered types and their signatures",
		Usage:   "types",
		Key:     commands.NewLiteralKey("types"),
		Run: commands.Returning(func(commands.Invocation) (any, error) {
			summaries := []TypeSummary{}
			for _, d := range env.Types.MatchTypeNamesByPrefix("") {
				s := TypeSummary{Name: d.Name}
				for _, c := range d.Constructors {
					s.Constructors = append(s.Constructors, c.Signature(d.Name))
				}
				for _, m := range d.Methods {
					s.Methods = append(s.Methods, m.Signature(d.Name))
				}
				summaries = append(summaries, s)
			}
			return summaries, nil
		}),
	}
}

// NewEntitiesCommand creates "entities", listing published entities.
func NewEntitiesCommand(env Environment) *commands.Command {
	return &commands.Command{
		Name:    "entities",
		Summary: "List published entities",
		Usage:   "entities",
		Key:     commands.NewLiteralKey("entities"),
		Run: commands.Returning(func(commands.Invocation) (any, error) {
			summaries := []EntitySummary{}
			for _, r := range env.Entities.MatchPrefix("", "") {
				summaries = append(summaries, EntitySummary{ID: r.ID, Type: r.Category})
			}
			return summaries, nil
		}),
	}
}

// NewShowCommand creates "show <entity>". A unique prefix of the identification is enough,
// and the reference takes the rest of the line so identifications may contain spaces.
func NewShowCommand(env Environment) *commands.Command {
	ids := grammar.CandidatesFunc(func(string) []string {
		return env.Entities.Identifications("")
	})

	return &commands.Command{
		Name:    "show",
		Summary: "Show a published entity",
		Usage:   "show <entity>",
		Key:     commands.NewLiteralKey("show"),
		Params:  grammar.NewSequence(parser.Line, grammar.NewReference(ids, grammar.AllowUniquePrefix(), grammar.Delimited(parser.Line))),
		Run: commands.Returning(func(inv commands.Invocation) (any, error) {
			id, _ := inv.Args.At(0).(string)
			record, ok := env.Entities.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("entity %s is gone", id)
			}
			return record.Value, nil
		}),
	}
}

// NewHistoryCommand creates "history <count>", returning the latest journal entries.
func NewHistoryCommand(env Environment) *commands.Command {
	return &commands.Command{
		Name:    "history",
		Summary: "Show the latest journaled expressions",
		Usage:   "history <count>",
		Key:     commands.NewLiteralKey("history"),
		Params:  grammar.NewSequence(parser.Space, grammar.NewValue(objtypes.KindInt, env.Parsers, grammar.Delimited(parser.Space))),
		Run: commands.Returning(func(inv commands.Invocation) (any, error) {
			count, _ := inv.Args.At(0).(int64)
			if count <= 0 {
				return nil, fmt.Errorf("count must be positive, got %d", count)
			}
			return env.History.Recent(inv.Context, int(count))
		}),
	}
}
