// Package output provides the console printer objshell renders results with.
// Styling is injected through a StyleProvider so the printer itself stays plain by default.
package output

// StyleProvider supplies text styles for semantic output types.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable reports whether the provider can style output right now.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines the output modes the printer can operate in.
type Mode int

const (
	// ModeAuto styles output when a provider is available
	ModeAuto Mode = iota
	// ModeStyled forces styled output
	ModeStyled
	// ModePlain forces plain text output with escape sequences stripped
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
	// SemanticCommand represents an echoed expression.
	SemanticCommand SemanticType = "command"
	// SemanticKeyword represents type and command names.
	SemanticKeyword SemanticType = "keyword"
	// SemanticValue represents a rendered result value.
	SemanticValue SemanticType = "value"
	// SemanticComment represents script comments.
	SemanticComment SemanticType = "comment"
)
