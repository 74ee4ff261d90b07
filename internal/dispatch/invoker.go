// Package dispatch coerces raw argument tokens and invokes registered constructors and
// methods, normalizing every outcome into an InvocationResult. Nothing in this package
// returns an error or lets a panic escape to the caller.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"objshell/internal/coerce"
	"objshell/internal/logger"
	"objshell/internal/registry"
	"objshell/pkg/objtypes"
)

// Invoker performs coercion and invocation for resolved callables.
type Invoker struct {
	parsers *coerce.Registry
	logger  *log.Logger
}

// NewInvoker creates an invoker that coerces arguments with parsers.
func NewInvoker(parsers *coerce.Registry) *Invoker {
	return &Invoker{
		parsers: parsers,
		logger:  logger.NewStyledLogger("Dispatch"),
	}
}

// Invoke coerces raw to the argument kinds of c and calls it on receiver. The receiver is
// ignored for constructors and required for methods.
func (inv *Invoker) Invoke(c registry.Callable, receiver any, raw []string) *objtypes.InvocationResult {
	id := uuid.NewString()
	result := inv.invoke(c, receiver, raw).WithID(id)

	inv.logger.Debug("Invocation", "id", id, "callable", c.Name, "args", len(raw),
		"status", result.Status, "failure", result.Failure)
	return result
}

func (inv *Invoker) invoke(c registry.Callable, receiver any, raw []string) *objtypes.InvocationResult {
	if len(raw) != c.Arity() {
		return objtypes.NotInvoked(objtypes.FailureResolution,
			"expected %d arguments, got %d", c.Arity(), len(raw))
	}
	if c.Invoke == nil {
		return objtypes.NotInvoked(objtypes.FailureResolution, "callable has no invoker")
	}
	isMethod := c.Name != ""
	if isMethod && receiver == nil {
		return objtypes.Failed(objtypes.FailureAccess, "method %s needs a receiver", c.Name)
	}

	args := make([]any, len(raw))
	for i, token := range raw {
		v, err := inv.coerce(c.ArgTypes[i], token)
		if err != nil {
			return objtypes.NotInvoked(objtypes.FailureCoercion,
				"argument %d (%q) cannot be converted to %s: %v", i+1, token, c.ArgTypes[i], err).
				WithPosition(i)
		}
		args[i] = v
	}

	value, err := call(c, receiver, args)
	if err != nil {
		kind := objtypes.FailureInvocation
		if errors.Is(err, objtypes.ErrAccessDenied) {
			kind = objtypes.FailureAccess
		}
		return objtypes.Failed(kind, "%v", err)
	}
	return objtypes.Invoked(value)
}

func (inv *Invoker) coerce(kind objtypes.Kind, token string) (any, error) {
	if inv.parsers == nil {
		return nil, fmt.Errorf("%w: %s", coerce.ErrUnknownKind, kind)
	}
	return inv.parsers.Parse(kind, token)
}

// call runs the invoker, converting a panic into an error.
func call(c registry.Callable, receiver any, args []any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Invoke(receiver, args)
}
