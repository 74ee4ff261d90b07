package grammar

import (
	"fmt"
	"strings"

	"objshell/internal/coerce"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// Value accepts any non-empty token without an unescaped delimiter. Conversion to the target
// kind is delegated to a coercion registry when the value is parsed; matching never coerces.
type Value struct {
	kind    objtypes.Kind
	parsers *coerce.Registry
	opts    options
}

// NewValue creates a simple-value parameter of the given kind. A nil registry makes Parse
// yield the unquoted raw token.
func NewValue(kind objtypes.Kind, parsers *coerce.Registry, opts ...Option) *Value {
	return &Value{kind: kind, parsers: parsers, opts: newOptions(opts)}
}

// Kind returns the target kind.
func (v *Value) Kind() objtypes.Kind {
	return v.kind
}

// PartialMatches reports whether text is still a single token.
func (v *Value) PartialMatches(text string) bool {
	return text == "" || !parser.HasDelimiter(text, v.opts.delim)
}

// CompleteMatches reports whether text is a single non-blank token.
func (v *Value) CompleteMatches(text string) bool {
	return strings.TrimSpace(text) != "" && !parser.HasDelimiter(text, v.opts.delim)
}

// ExtractInput removes the token and one delimiter.
func (v *Value) ExtractInput(text string) string {
	return extractWith(v, text, v.opts.delim)
}

// Parse coerces the token to the parameter kind.
func (v *Value) Parse(text string) (any, error) {
	if !v.CompleteMatches(text) {
		return nil, fmt.Errorf("%w: %q is not a single %s value", ErrNoMatch, text, v.kind)
	}
	raw := strings.TrimSpace(text)
	if v.parsers == nil {
		return parser.Unquote(raw), nil
	}
	value, err := v.parsers.Parse(v.kind, raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", v.kind, err)
	}
	return value, nil
}

// AutoComplete completes boolean literals; other kinds have no finite completion set.
func (v *Value) AutoComplete(text string) string {
	if v.kind != objtypes.KindBool || text == "" {
		return text
	}
	for _, word := range []string{"true", "false"} {
		if strings.HasPrefix(word, text) {
			return word
		}
	}
	return text
}
