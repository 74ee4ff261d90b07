package grammar

import (
	"fmt"
	"strings"
)

// Literal matches a fixed keyword.
type Literal struct {
	keyword string
	opts    options
}

// NewLiteral creates a parameter that accepts exactly keyword.
func NewLiteral(keyword string, opts ...Option) *Literal {
	return &Literal{keyword: keyword, opts: newOptions(opts)}
}

// Keyword returns the literal text.
func (l *Literal) Keyword() string {
	return l.keyword
}

// PartialMatches reports whether text is a prefix of the keyword.
func (l *Literal) PartialMatches(text string) bool {
	return strings.HasPrefix(l.keyword, text)
}

// CompleteMatches reports whether text is the keyword.
func (l *Literal) CompleteMatches(text string) bool {
	return text == l.keyword
}

// ExtractInput removes the keyword and one delimiter.
func (l *Literal) ExtractInput(text string) string {
	return extractWith(l, text, l.opts.delim)
}

// Parse returns the keyword.
func (l *Literal) Parse(text string) (any, error) {
	if !l.CompleteMatches(text) {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrNoMatch, l.keyword, text)
	}
	return l.keyword, nil
}

// AutoComplete returns the keyword for any of its prefixes.
func (l *Literal) AutoComplete(text string) string {
	if strings.HasPrefix(l.keyword, text) {
		return l.keyword
	}
	return text
}
