// Package grammar implements the incremental expression grammar: self-describing parameter
// matchers that answer, for any prefix of user input, whether it can still grow into a valid
// expression, whether it already is one, what its unique completion is, and what remains
// after a slot has consumed its part.
package grammar

import (
	"errors"

	"objshell/internal/parser"
)

var (
	// ErrNoMatch is returned by Parse when the text is not a complete match.
	ErrNoMatch = errors.New("input does not match")
	// ErrAmbiguous is returned by Parse when a reference prefix matches several candidates.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// Parameter is the matching and parsing contract of one grammar slot. All methods are total:
// a mismatch is reported through the return value, never by panicking.
type Parameter interface {
	// PartialMatches reports whether text, or some extension of it, could be a complete match.
	// The empty string is a partial match for every parameter.
	PartialMatches(text string) bool
	// CompleteMatches reports whether text in its entirety is accepted.
	CompleteMatches(text string) bool
	// ExtractInput removes the matched portion and one following delimiter. Text that does
	// not match is returned unchanged.
	ExtractInput(text string) string
	// Parse converts a complete match into its value.
	Parse(text string) (any, error)
	// AutoComplete returns the unique completion of text. With zero or several candidates
	// text is returned unchanged.
	AutoComplete(text string) string
}

// Candidates produces the identifications a Reference can resolve to.
type Candidates interface {
	Candidates(prefix string) []string
}

// CandidatesFunc adapts a function to Candidates.
type CandidatesFunc func(prefix string) []string

// Candidates calls f(prefix).
func (f CandidatesFunc) Candidates(prefix string) []string {
	return f(prefix)
}

// Option configures a single-slot parameter.
type Option func(*options)

type options struct {
	delim        parser.Delimiter
	uniquePrefix bool
}

func newOptions(opts []Option) options {
	o := options{delim: parser.Comma}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Delimited sets the delimiter ExtractInput removes after the matched token. The default is
// parser.Comma.
func Delimited(d parser.Delimiter) Option {
	return func(o *options) {
		o.delim = d
	}
}

// AllowUniquePrefix lets a Reference accept an unambiguous prefix of a candidate as complete.
func AllowUniquePrefix() Option {
	return func(o *options) {
		o.uniquePrefix = true
	}
}

// extractWith removes the first token of text and one delimiter when the token is a complete
// match for p.
func extractWith(p Parameter, text string, d parser.Delimiter) string {
	token := parser.FirstToken(text, d)
	if !p.CompleteMatches(token) {
		return text
	}
	return parser.RemainderAfter(text, token, d)
}

// Argument is one parsed value tagged with the parameter that produced it.
type Argument struct {
	Param Parameter
	Value any
}

// Arguments is the ordered result of parsing a Sequence.
type Arguments []Argument

// Values returns the parsed values in order.
func (a Arguments) Values() []any {
	values := make([]any, len(a))
	for i, arg := range a {
		values[i] = arg.Value
	}
	return values
}

// At returns the value at index i, or nil when out of range.
func (a Arguments) At(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i].Value
}

// CallExpr is the parsed form of Name( arg, arg, ... ). Args are the raw argument tokens.
type CallExpr struct {
	Name string
	Args []string
}
