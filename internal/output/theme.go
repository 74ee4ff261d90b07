package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a set of lipgloss styles keyed by semantic type.
type Theme struct {
	Name   string
	styles map[SemanticType]lipgloss.Style
}

// DefaultTheme returns the built-in color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",
		styles: map[SemanticType]lipgloss.Style{
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			SemanticSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			SemanticError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			SemanticCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
			SemanticKeyword: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
			SemanticValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			SemanticComment: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		},
	}
}

// GetStyle returns the style for semantic, or an unstyled style if the theme has none.
func (t *Theme) GetStyle(semantic SemanticType) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable reports whether the terminal can display colors.
func (t *Theme) IsAvailable() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}
