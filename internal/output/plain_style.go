package output

import "strings"

// PlainTextStyle implements TextStyle for plain text output without any styling.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render joins strs and adds the prefix.
func (p *PlainTextStyle) Render(strs ...string) string {
	return p.prefix + strings.Join(strs, "")
}

// PlainStyleProvider marks semantic output with text prefixes instead of colors.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle returns the prefix style for semantic.
func (p *PlainStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	switch semantic {
	case SemanticSuccess:
		return NewPlainTextStyle("✓ ")
	case SemanticWarning:
		return NewPlainTextStyle("⚠ ")
	case SemanticError:
		return NewPlainTextStyle("✗ ")
	case SemanticInfo:
		return NewPlainTextStyle("ℹ ")
	case SemanticCommand:
		return NewPlainTextStyle("> ")
	case SemanticComment:
		return NewPlainTextStyle("%% ")
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable always reports true.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}
