// Package shell runs objshell expressions, interactively on top of readline or in batch from
// a script.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"objshell/internal/commands"
	"objshell/internal/entity"
	"objshell/internal/journal"
	"objshell/internal/logger"
	"objshell/internal/output"
	"objshell/pkg/objtypes"
)

// commentPrefix starts a line that is skipped.
const commentPrefix = "%%"

// LineReader reads one line of input. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
}

// Shell executes expressions against a command set, publishes constructed entities, journals
// every result and renders it.
type Shell struct {
	set      *commands.Set
	entities *entity.Store
	journal  journal.Journal
	printer  *output.Printer
	echo     bool
	logger   *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithJournal records every executed expression in j.
func WithJournal(j journal.Journal) Option {
	return func(s *Shell) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithPrinter renders results through p.
func WithPrinter(p *output.Printer) Option {
	return func(s *Shell) {
		if p != nil {
			s.printer = p
		}
	}
}

// WithEcho echoes each script line before running it.
func WithEcho(echo bool) Option {
	return func(s *Shell) {
		s.echo = echo
	}
}

// New creates a shell over set. Constructed entities are published to entities.
func New(set *commands.Set, entities *entity.Store, opts ...Option) *Shell {
	s := &Shell{
		set:      set,
		entities: entities,
		journal:  journal.Nop{},
		printer:  output.NewPrinter(),
		logger:   logger.NewStyledLogger("Shell"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessInput executes one line. Blank lines and comments return a nil result and no
// error. Input that is not a complete expression returns an error wrapping
// commands.ErrUnknownCommand, commands.ErrIncomplete or commands.ErrAmbiguousCommand.
func (s *Shell) ProcessInput(ctx context.Context, line string) (*objtypes.InvocationResult, error) {
	text := strings.TrimSpace(line)
	if text == "" || strings.HasPrefix(text, commentPrefix) {
		return nil, nil
	}

	cmd, err := s.set.Resolve(text)
	if err != nil {
		s.logger.Debug("Expression rejected", "expression", text, "error", err)
		s.printer.Warning(err.Error())
		return nil, err
	}

	result, _ := cmd.ExecuteContext(ctx, text)
	if cmd.Constructs {
		result = s.publish(result)
	}

	if err := s.journal.Record(ctx, text, result); err != nil {
		s.logger.Warn("Failed to journal expression", "expression", text, "error", err)
	}
	logger.Expression(text, result.Status.String())
	s.printer.Result(result)
	return result, nil
}

// publish stores the entity a construct command produced. A publishing conflict turns the
// result into an invocation failure.
func (s *Shell) publish(result *objtypes.InvocationResult) *objtypes.InvocationResult {
	if !result.OK() || result.Category == "" {
		return result
	}
	e, ok := result.Value.(objtypes.Entity)
	if !ok {
		return result
	}
	record, err := s.entities.Publish(result.Category, e)
	if err != nil {
		return objtypes.Failed(objtypes.FailureInvocation, "cannot publish %s: %v", result.Category, err).WithID(result.ID)
	}
	s.logger.Info("Published entity", "type", record.Category, "id", record.ID)
	return result
}

// Complete returns the autocompletion of text.
func (s *Shell) Complete(text string) string {
	return s.set.AutoComplete(text)
}

// RunScript executes every line of r in order. Execution continues past failures; the
// returned error reports how many lines did not invoke successfully.
func (s *Shell) RunScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo, failures := 0, 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := scanner.Text()
		if s.echo {
			trimmed := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(trimmed, commentPrefix):
				s.printer.Comment(strings.TrimSpace(strings.TrimPrefix(trimmed, commentPrefix)))
			case trimmed != "":
				s.printer.Command(trimmed)
			}
		}

		result, err := s.ProcessInput(ctx, line)
		if err != nil || (result != nil && !result.OK()) {
			failures++
			s.logger.Debug("Script line failed", "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d lines failed", failures, lineNo)
	}
	return nil
}

// Run reads and executes lines until end of input, an interrupt on an empty line, or an exit
// command.
func (s *Shell) Run(ctx context.Context, r LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if exitRequested(line) {
			s.printer.Info("Goodbye")
			return nil
		}
		_, _ = s.ProcessInput(ctx, line)
	}
}

func exitRequested(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit":
		return true
	}
	return false
}
