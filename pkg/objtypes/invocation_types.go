// Package objtypes defines the shared types of the object shell.
// This file contains the outcome of a dispatch attempt: its status, the produced value,
// and the diagnostic category of a failure.
package objtypes

import (
	"errors"
	"fmt"
)

// ErrAccessDenied marks a callable that cannot legally be invoked (for example a member
// that is registered but not exposed to the caller, or a receiver of the wrong type).
// Invokers wrap it so the dispatcher can report an access failure instead of an
// invocation failure.
var ErrAccessDenied = errors.New("access denied")

// InvocationStatus is the outcome of one dispatch attempt.
type InvocationStatus int

const (
	// StatusNotInvoked means the callable was never reached (unresolved or uncoercible arguments)
	StatusNotInvoked InvocationStatus = iota
	// StatusInvoked means the callable ran and returned normally
	StatusInvoked
	// StatusFailed means the callable ran and raised a failure
	StatusFailed
)

// String returns the lower-case name of the status.
func (s InvocationStatus) String() string {
	switch s {
	case StatusInvoked:
		return "invoked"
	case StatusFailed:
		return "failed"
	default:
		return "not_invoked"
	}
}

// MarshalText renders the status by name in JSON and YAML output.
func (s InvocationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FailureKind classifies the diagnostic of an unsuccessful invocation.
type FailureKind int

const (
	// FailureNone is used for invoked results
	FailureNone FailureKind = iota
	// FailureResolution means no callable matched the type, name and arity
	FailureResolution
	// FailureCoercion means an argument could not be converted to its target type
	FailureCoercion
	// FailureInvocation means the invoked code itself failed
	FailureInvocation
	// FailureAccess means the callable could not legally be invoked
	FailureAccess
)

// String returns the lower-case name of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureResolution:
		return "resolution"
	case FailureCoercion:
		return "coercion"
	case FailureInvocation:
		return "invocation"
	case FailureAccess:
		return "access"
	default:
		return "none"
	}
}

// MarshalText renders the failure kind by name in JSON and YAML output.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// InvocationResult is created once per dispatch attempt and is owned by the caller that
// requested it. It is never mutated after being returned.
type InvocationResult struct {
	ID         string           `json:"id" yaml:"id"`
	Status     InvocationStatus `json:"status" yaml:"status"`
	Value      any              `json:"value,omitempty" yaml:"value,omitempty"`
	Diagnostic string           `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Failure    FailureKind      `json:"failure" yaml:"failure"`
	Position   int              `json:"position" yaml:"position"` // failing argument index, -1 if not applicable
	// Category is the type name of a constructed value.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Invoked builds a successful result carrying value (which may be nil).
func Invoked(value any) *InvocationResult {
	return &InvocationResult{Status: StatusInvoked, Value: value, Position: -1}
}

// NotInvoked builds a result for a dispatch that never reached the callable.
func NotInvoked(kind FailureKind, format string, args ...any) *InvocationResult {
	return &InvocationResult{
		Status:     StatusNotInvoked,
		Failure:    kind,
		Diagnostic: fmt.Sprintf(format, args...),
		Position:   -1,
	}
}

// Failed builds a result for a callable that ran and failed.
func Failed(kind FailureKind, format string, args ...any) *InvocationResult {
	return &InvocationResult{
		Status:     StatusFailed,
		Failure:    kind,
		Diagnostic: fmt.Sprintf(format, args...),
		Position:   -1,
	}
}

// WithID returns a copy of r carrying the given identifier.
func (r *InvocationResult) WithID(id string) *InvocationResult {
	cp := *r
	cp.ID = id
	return &cp
}

// WithPosition returns a copy of r pointing at the failing argument index.
func (r *InvocationResult) WithPosition(pos int) *InvocationResult {
	cp := *r
	cp.Position = pos
	return &cp
}

// WithCategory returns a copy of r recording the type name of its value.
func (r *InvocationResult) WithCategory(category string) *InvocationResult {
	cp := *r
	cp.Category = category
	return &cp
}

// OK reports whether the callable was invoked successfully.
func (r *InvocationResult) OK() bool {
	return r != nil && r.Status == StatusInvoked
}

// Error returns the diagnostic as an error, or nil for invoked results.
func (r *InvocationResult) Error() error {
	if r == nil || r.Status == StatusInvoked {
		return nil
	}
	return fmt.Errorf("%s (%s): %s", r.Status, r.Failure, r.Diagnostic)
}
