package builtin

import (
	"fmt"
	"strings"

	"objshell/internal/commands"
	"objshell/pkg/objtypes"
)

// NewHelpCommand creates "help", describing every command registered in set.
func NewHelpCommand(set *commands.Set) *commands.Command {
	return &commands.Command{
		Name:    "help",
		Summary: "Show this help",
		Usage:   "help",
		Key:     commands.NewLiteralKey("help"),
		Run: commands.Returning(func(commands.Invocation) (any, error) {
			var b strings.Builder
			b.WriteString("# objshell\n\n")
			b.WriteString("Type an expression and press Tab to complete it.\n\n")
			b.WriteString("| Command | Usage | Description |\n")
			b.WriteString("|---|---|---|\n")
			for _, cmd := range set.All() {
				fmt.Fprintf(&b, "| %s | `%s` | %s |\n", cmd.Name, cmd.Usage, cmd.Summary)
			}
			b.WriteString("\nArguments are separated by commas and may contain spaces. ")
			b.WriteString("Lines starting with `%%` are comments.\n")
			return objtypes.Markdown(b.String()), nil
		}),
	}
}
