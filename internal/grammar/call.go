package grammar

import (
	"fmt"
	"slices"
	"strings"

	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// Arities reports the legal argument counts for a resolved callable name.
type Arities func(name string) []int

// Call matches Name( arg, arg, ... ). The name slot is a parameter of its own, typically a
// Reference; each legal arity is matched as a sequence of raw values joined by the argument
// delimiter.
type Call struct {
	name    Parameter
	arities Arities
	delim   parser.Delimiter
}

// NewCall creates a call parameter.
func NewCall(name Parameter, arities Arities, delim parser.Delimiter) *Call {
	return &Call{name: name, arities: arities, delim: delim}
}

// callParts is text split around its parentheses.
type callParts struct {
	name     string
	open     bool
	args     string // after "(" up to ")" or the end
	closed   bool
	trailing string // after ")"
}

func splitCall(text string) callParts {
	open := parser.IndexUnescaped(text, '(')
	if open < 0 {
		return callParts{name: text}
	}
	parts := callParts{name: text[:open], open: true}
	inner := text[open+1:]
	if end := parser.IndexUnescaped(inner, ')'); end >= 0 {
		parts.args = inner[:end]
		parts.closed = true
		parts.trailing = inner[end+1:]
		return parts
	}
	parts.args = inner
	return parts
}

func (c *Call) argSequence(n int) *Sequence {
	params := make([]Parameter, n)
	for i := range params {
		params[i] = NewValue(objtypes.KindString, nil, Delimited(c.delim))
	}
	return NewSequence(c.delim, params...)
}

func (c *Call) legalArities(name string) []int {
	if c.arities == nil {
		return nil
	}
	arities := slices.Clone(c.arities(name))
	slices.Sort(arities)
	return slices.Compact(arities)
}

// matchingArity returns the arity whose argument sequence completely matches args.
func (c *Call) matchingArity(name, args string) (int, bool) {
	args = strings.TrimSpace(args)
	for _, n := range c.legalArities(name) {
		if c.argSequence(n).CompleteMatches(args) {
			return n, true
		}
	}
	return 0, false
}

// partialArities returns the arities whose argument sequence could still grow into args.
func (c *Call) partialArities(name, args string) []int {
	args = strings.TrimLeft(args, " \t")
	var out []int
	for _, n := range c.legalArities(name) {
		if c.argSequence(n).PartialMatches(args) {
			out = append(out, n)
		}
	}
	return out
}

// PartialMatches reports whether text can still grow into a call with a legal arity.
func (c *Call) PartialMatches(text string) bool {
	parts := splitCall(text)
	if !parts.open {
		return c.name.PartialMatches(text)
	}
	if !c.name.CompleteMatches(parts.name) {
		return false
	}
	if parts.closed {
		if parts.trailing != "" {
			return false
		}
		_, ok := c.matchingArity(parts.name, parts.args)
		return ok
	}
	return len(c.partialArities(parts.name, parts.args)) > 0
}

// CompleteMatches reports whether text is an exact name with a closed argument list of a
// registered arity.
func (c *Call) CompleteMatches(text string) bool {
	parts := splitCall(text)
	if !parts.closed || parts.trailing != "" || !c.name.CompleteMatches(parts.name) {
		return false
	}
	_, ok := c.matchingArity(parts.name, parts.args)
	return ok
}

// ExtractInput removes the call and one delimiter.
func (c *Call) ExtractInput(text string) string {
	return extractWith(c, text, parser.Space)
}

// Parse yields a CallExpr holding the resolved name and the raw argument tokens.
func (c *Call) Parse(text string) (any, error) {
	if !c.CompleteMatches(text) {
		return nil, fmt.Errorf("%w: %q is not a complete call", ErrNoMatch, text)
	}
	parts := splitCall(text)
	name := parts.name
	if resolved, err := c.name.Parse(parts.name); err == nil {
		if s, ok := resolved.(string); ok {
			name = s
		}
	}
	n, _ := c.matchingArity(parts.name, parts.args)
	args, _ := c.argSequence(n).Slices(strings.TrimSpace(parts.args))
	if args == nil {
		args = []string{}
	}
	return CallExpr{Name: name, Args: args}, nil
}

// AutoComplete completes the name, opening the argument list once the name is exact. Inside
// an unclosed argument list the single arity still possible is completed; an arity of zero
// closes the list.
func (c *Call) AutoComplete(text string) string {
	parts := splitCall(text)
	if !parts.open {
		completed := c.name.AutoComplete(text)
		if !c.name.CompleteMatches(completed) {
			return completed
		}
		if arities := c.legalArities(completed); len(arities) == 1 && arities[0] == 0 {
			return completed + "()"
		}
		return completed + "("
	}
	if parts.closed || !c.name.CompleteMatches(parts.name) {
		return text
	}

	candidates := c.partialArities(parts.name, parts.args)
	if len(candidates) != 1 {
		return text
	}
	if candidates[0] == 0 {
		return text + ")"
	}
	args := strings.TrimLeft(parts.args, " \t")
	completed := c.argSequence(candidates[0]).AutoComplete(args)
	if completed == args {
		return text
	}
	return text[:len(text)-len(args)] + completed
}
