// Package commands composes keys and parameter sequences into the commands offered to
// users, and collects them into a command set.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"objshell/internal/grammar"
	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// Invocation is what an execution function receives for one complete expression.
type Invocation struct {
	Context context.Context
	Text    string
	// KeyExpression is the key portion of Text, e.g. "new" or "alice."
	KeyExpression string
	Args          grammar.Arguments
}

// RunFunc executes a parsed expression.
type RunFunc func(inv Invocation) *objtypes.InvocationResult

// Returning adapts a function producing a value or an error to a RunFunc. Errors become
// invocation failures.
func Returning(fn func(inv Invocation) (any, error)) RunFunc {
	return func(inv Invocation) *objtypes.InvocationResult {
		value, err := fn(inv)
		if err != nil {
			return objtypes.Failed(objtypes.FailureInvocation, "%v", err)
		}
		return objtypes.Invoked(value)
	}
}

var noArguments = grammar.NewSequence(parser.Space)

// Command is a key, an argument grammar and an execution function. Matching runs in two
// phases: the key first, then the arguments once the key is complete.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Key     Key
	// Params is the argument grammar. Nil means no arguments.
	Params *grammar.Sequence
	// Scope derives the argument grammar from the key expression and takes precedence over
	// Params. Returning nil rejects the key expression.
	Scope func(keyExpr string) *grammar.Sequence
	Run   RunFunc
	// Constructs marks commands whose values are published as entities.
	Constructs bool
}

func (c *Command) sequence(keyExpr string) *grammar.Sequence {
	if c.Scope != nil {
		return c.Scope(keyExpr)
	}
	if c.Params != nil {
		return c.Params
	}
	return noArguments
}

// arguments returns the argument grammar and the argument text of a key-complete input.
func (c *Command) arguments(text string) (*grammar.Sequence, string) {
	seq := c.sequence(c.Key.KeyExpression(text))
	return seq, strings.TrimRight(c.Key.RemoveKey(text), " \t")
}

// PartialMatches reports whether text can still grow into a complete expression.
func (c *Command) PartialMatches(text string) bool {
	if !c.Key.PartialMatches(text) {
		return false
	}
	if !c.Key.CompleteMatches(text) {
		return true
	}
	seq, rest := c.arguments(text)
	return seq != nil && seq.PartialMatches(rest)
}

// CompleteMatches reports whether text is a complete expression.
func (c *Command) CompleteMatches(text string) bool {
	if !c.Key.CompleteMatches(text) {
		return false
	}
	seq, rest := c.arguments(text)
	return seq != nil && seq.CompleteMatches(rest)
}

// AutoComplete returns the unique completion of text, or text unchanged.
func (c *Command) AutoComplete(text string) string {
	if !c.Key.PartialMatches(text) {
		return text
	}
	if !c.Key.CompleteMatches(text) {
		if completed, ok := c.Key.AutoComplete(text); ok {
			return completed
		}
		return text
	}

	seq := c.sequence(c.Key.KeyExpression(text))
	if seq == nil {
		return text
	}
	rest := c.Key.RemoveKey(text)
	completed := seq.AutoComplete(rest)
	if completed == rest {
		return text
	}
	prefix := text[:len(text)-len(rest)]
	if !strings.HasSuffix(prefix, c.Key.Separator()) {
		prefix += c.Key.Separator()
	}
	return prefix + completed
}

// Execute runs text with a background context.
func (c *Command) Execute(text string) (*objtypes.InvocationResult, bool) {
	return c.ExecuteContext(context.Background(), text)
}

// ExecuteContext parses text and runs the execution function. It returns false when text is
// not a complete expression. A panicking execution function is reported as a failed result.
func (c *Command) ExecuteContext(ctx context.Context, text string) (*objtypes.InvocationResult, bool) {
	if !c.CompleteMatches(text) {
		return nil, false
	}
	seq, rest := c.arguments(text)
	args, err := seq.ParseArguments(rest)
	if err != nil {
		kind := objtypes.FailureCoercion
		if errors.Is(err, grammar.ErrNoMatch) || errors.Is(err, grammar.ErrAmbiguous) {
			kind = objtypes.FailureResolution
		}
		return objtypes.NotInvoked(kind, "%v", err).WithID(uuid.NewString()), true
	}

	result := c.run(Invocation{
		Context:       ctx,
		Text:          text,
		KeyExpression: c.Key.KeyExpression(text),
		Args:          args,
	})
	if result.ID == "" {
		result = result.WithID(uuid.NewString())
	}
	return result, true
}

func (c *Command) run(inv Invocation) (result *objtypes.InvocationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = objtypes.Failed(objtypes.FailureInvocation, "%s: panic: %v", c.Name, r)
		}
	}()
	if c.Run == nil {
		return objtypes.NotInvoked(objtypes.FailureResolution, "command %s has no execution function", c.Name)
	}
	result = c.Run(inv)
	if result == nil {
		result = objtypes.Invoked(nil)
	}
	return result
}

// String returns the command name.
func (c *Command) String() string {
	return fmt.Sprintf("command(%s)", c.Name)
}
