package commands

import (
	"strings"

	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// Key recognizes the leading text that selects a command.
//
// Unlike grammar.Parameter, AutoComplete reports ambiguity explicitly: it returns false when
// there is no unique completion, and callers keep the input as typed.
type Key interface {
	PartialMatches(text string) bool
	CompleteMatches(text string) bool
	AutoComplete(text string) (string, bool)
	// KeyExpression returns the leading part of text the key is judged on.
	KeyExpression(text string) string
	// RemoveKey returns text without its key expression and separator.
	RemoveKey(text string) string
	// Separator is inserted after a completed key.
	Separator() string
}

// LiteralKey is a constant keyword followed by a space.
type LiteralKey struct {
	keyword string
}

// NewLiteralKey creates a key for keyword.
func NewLiteralKey(keyword string) *LiteralKey {
	return &LiteralKey{keyword: keyword}
}

// Keyword returns the key's keyword.
func (k *LiteralKey) Keyword() string {
	return k.keyword
}

func (k *LiteralKey) KeyExpression(text string) string {
	return parser.FirstToken(text, parser.Space)
}

func (k *LiteralKey) PartialMatches(text string) bool {
	expr := k.KeyExpression(text)
	if expr == text {
		return strings.HasPrefix(k.keyword, text)
	}
	return expr == k.keyword
}

func (k *LiteralKey) CompleteMatches(text string) bool {
	return k.KeyExpression(text) == k.keyword
}

func (k *LiteralKey) AutoComplete(text string) (string, bool) {
	if strings.HasPrefix(k.keyword, text) {
		return k.keyword, true
	}
	return "", false
}

func (k *LiteralKey) RemoveKey(text string) string {
	if !k.CompleteMatches(text) {
		return text
	}
	return strings.TrimLeft(parser.RemainderAfter(text, k.keyword, parser.Space), " \t")
}

func (k *LiteralKey) Separator() string {
	return parser.Space.Sep
}

// EntityKey addresses a published entity: its identification followed by a marker,
// as in "alice.".
type EntityKey struct {
	entities objtypes.EntityLookup
	marker   byte
}

// NewEntityKey creates a key over the live entities of lookup.
func NewEntityKey(entities objtypes.EntityLookup, marker byte) *EntityKey {
	return &EntityKey{entities: entities, marker: marker}
}

// KeyExpression returns text up to and including the first unescaped marker, or all of text
// when no marker has been typed.
func (k *EntityKey) KeyExpression(text string) string {
	if i := parser.IndexUnescaped(text, k.marker); i >= 0 {
		return text[:i+1]
	}
	return text
}

// Entity returns the identification addressed by text.
func (k *EntityKey) Entity(text string) string {
	return strings.TrimSuffix(k.KeyExpression(text), string(k.marker))
}

func (k *EntityKey) hasMarker(expr string) bool {
	return strings.HasSuffix(expr, string(k.marker))
}

func (k *EntityKey) PartialMatches(text string) bool {
	if text == "" {
		return true
	}
	expr := k.KeyExpression(text)
	if !k.hasMarker(expr) {
		return len(k.entities.MatchPrefix("", text)) > 0
	}
	_, ok := k.entities.Lookup(k.Entity(text))
	return ok
}

func (k *EntityKey) CompleteMatches(text string) bool {
	expr := k.KeyExpression(text)
	if !k.hasMarker(expr) {
		return false
	}
	_, ok := k.entities.Lookup(k.Entity(text))
	return ok
}

func (k *EntityKey) AutoComplete(text string) (string, bool) {
	if k.CompleteMatches(text) {
		return k.KeyExpression(text), true
	}
	if k.hasMarker(k.KeyExpression(text)) {
		return "", false
	}
	matches := k.entities.MatchPrefix("", text)
	if len(matches) != 1 {
		return "", false
	}
	return matches[0].ID + string(k.marker), true
}

func (k *EntityKey) RemoveKey(text string) string {
	if !k.CompleteMatches(text) {
		return text
	}
	return text[len(k.KeyExpression(text)):]
}

func (k *EntityKey) Separator() string {
	return string(k.marker)
}
