package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"objshell/pkg/objtypes"
)

var (
	// ErrUnknownCommand is returned when no command matches the input at all.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrIncomplete is returned when the input is a valid prefix but not a complete expression.
	ErrIncomplete = errors.New("incomplete expression")
	// ErrAmbiguousCommand is returned when several commands completely match the input.
	ErrAmbiguousCommand = errors.New("ambiguous expression")
)

// Set holds the commands offered to users, in registration order. It is safe for
// concurrent use.
type Set struct {
	mu       sync.RWMutex
	commands []*Command
	byName   map[string]*Command
}

// NewSet creates an empty command set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Command)}
}

// Register adds a command. Returns an error if the name is empty, the key is missing, or a
// command with the same name is already registered.
func (s *Set) Register(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}
	if cmd.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmd.Key == nil {
		return fmt.Errorf("command %s has no key", cmd.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[cmd.Name]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name)
	}
	s.byName[cmd.Name] = cmd
	s.commands = append(s.commands, cmd)
	return nil
}

// Unregister removes a command by name. Unknown names are ignored.
func (s *Set) Unregister(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; !exists {
		return
	}
	delete(s.byName, name)
	for i, cmd := range s.commands {
		if cmd.Name == name {
			s.commands = append(s.commands[:i:i], s.commands[i+1:]...)
			break
		}
	}
}

// Get retrieves a command by name.
func (s *Set) Get(name string) (*Command, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cmd, exists := s.byName[name]
	return cmd, exists
}

// All returns the registered commands in registration order. The slice is a copy.
func (s *Set) All() []*Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Command(nil), s.commands...)
}

// Matching returns the commands that partially match text.
func (s *Set) Matching(text string) []*Command {
	var out []*Command
	for _, cmd := range s.All() {
		if cmd.PartialMatches(text) {
			out = append(out, cmd)
		}
	}
	return out
}

// Resolve returns the single command that completely matches text.
func (s *Set) Resolve(text string) (*Command, error) {
	var complete []*Command
	partial := false
	for _, cmd := range s.All() {
		if cmd.CompleteMatches(text) {
			complete = append(complete, cmd)
		} else if cmd.PartialMatches(text) {
			partial = true
		}
	}

	switch {
	case len(complete) == 1:
		return complete[0], nil
	case len(complete) > 1:
		names := make([]string, len(complete))
		for i, cmd := range complete {
			names[i] = cmd.Name
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousCommand, text, strings.Join(names, ", "))
	case partial:
		return nil, fmt.Errorf("%w: %q", ErrIncomplete, text)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, text)
	}
}

// AutoComplete returns the completion offered by the partially matching commands when they
// agree on exactly one; otherwise text is returned unchanged.
func (s *Set) AutoComplete(text string) string {
	completion := text
	for _, cmd := range s.Matching(text) {
		c := cmd.AutoComplete(text)
		if c == text || c == completion {
			continue
		}
		if completion != text {
			return text
		}
		completion = c
	}
	return completion
}

// Execute resolves and runs text.
func (s *Set) Execute(ctx context.Context, text string) (*objtypes.InvocationResult, error) {
	cmd, err := s.Resolve(text)
	if err != nil {
		return nil, err
	}
	result, _ := cmd.ExecuteContext(ctx, text)
	return result, nil
}
