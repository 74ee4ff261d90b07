package shell

import (
	"strings"

	"github.com/chzyer/readline"

	"objshell/internal/commands"
)

// Completer offers the command set's autocompletion to readline.
type Completer struct {
	set *commands.Set
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a completer over set.
func NewCompleter(set *commands.Set) *Completer {
	return &Completer{set: set}
}

// Do completes the text before the cursor. The single candidate is the suffix to insert.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	if pos < 0 || pos > len(line) {
		return nil, 0
	}
	text := string(line[:pos])
	completed := c.set.AutoComplete(text)
	if completed == text || !strings.HasPrefix(completed, text) {
		return nil, 0
	}
	return [][]rune{[]rune(completed[len(text):])}, 0
}

// NewReadline creates a readline instance with objshell's completion and history.
func NewReadline(set *commands.Set, prompt, historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    NewCompleter(set),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}
