// Package coerce converts raw argument text into typed values. Parsers are pluggable and
// keyed by target kind; the same registry serves simple-value grammar parameters and the
// dispatcher that coerces constructor and method arguments.
package coerce

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"

	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

// ErrUnknownKind is returned when no parser and no fallback handles a kind.
var ErrUnknownKind = errors.New("no parser for kind")

// Func parses one raw argument.
type Func func(raw string) (any, error)

// FallbackFunc parses arguments of kinds without a dedicated parser.
type FallbackFunc func(kind objtypes.Kind, raw string) (any, error)

// Registry maps kinds to parsers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	parsers  map[objtypes.Kind]Func
	fallback FallbackFunc
}

// NewRegistry creates a registry preloaded with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[objtypes.Kind]Func)}
	r.parsers[objtypes.KindString] = parseString
	r.parsers[objtypes.KindInt] = parseInt
	r.parsers[objtypes.KindFloat] = parseFloat
	r.parsers[objtypes.KindBool] = parseBool
	r.parsers[objtypes.KindDate] = parseDate
	r.parsers[objtypes.KindDuration] = parseDuration
	return r
}

// Register adds or replaces the parser for kind.
func (r *Registry) Register(kind objtypes.Kind, fn Func) error {
	if kind == "" {
		return fmt.Errorf("kind cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("parser for kind %s cannot be nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[kind] = fn
	return nil
}

// SetFallback installs the parser used for kinds without a registered parser.
func (r *Registry) SetFallback(fn FallbackFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = fn
}

// Has reports whether kind can be parsed, either directly or through the fallback.
func (r *Registry) Has(kind objtypes.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[kind]
	return ok || r.fallback != nil
}

// Parse converts raw into a value of the given kind.
func (r *Registry) Parse(kind objtypes.Kind, raw string) (any, error) {
	r.mu.RLock()
	fn, ok := r.parsers[kind]
	fallback := r.fallback
	r.mu.RUnlock()

	if ok {
		return fn(raw)
	}
	if fallback != nil {
		return fallback(kind, raw)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

func parseString(raw string) (any, error) {
	return parser.Unquote(strings.TrimSpace(raw)), nil
}

func parseInt(raw string) (any, error) {
	text, ok := decimal(strings.TrimSpace(raw))
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", raw)
	}
	v, err := cast.ToInt64E(text)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", raw)
	}
	return v, nil
}

// decimal validates a base-10 integer and strips its leading zeros, since cast reads "010"
// as octal and "0x10" as hex.
func decimal(text string) (string, bool) {
	sign := ""
	if text != "" && (text[0] == '-' || text[0] == '+') {
		sign, text = text[:1], text[1:]
	}
	if text == "" {
		return "", false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return "", false
		}
	}
	text = strings.TrimLeft(text, "0")
	if text == "" {
		text = "0"
	}
	return sign + text, true
}

func parseFloat(raw string) (any, error) {
	v, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

func parseBool(raw string) (any, error) {
	v, err := cast.ToBoolE(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%q is not a boolean", raw)
	}
	return v, nil
}

func parseDate(raw string) (any, error) {
	v, err := cast.ToTimeE(parser.Unquote(strings.TrimSpace(raw)))
	if err != nil {
		return nil, fmt.Errorf("%q is not a date", raw)
	}
	return v, nil
}

func parseDuration(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	// cast treats bare numbers as nanoseconds; require a unit instead
	if _, err := cast.ToFloat64E(text); err == nil {
		return nil, fmt.Errorf("%q is missing a duration unit", raw)
	}
	v, err := cast.ToDurationE(text)
	if err != nil {
		return nil, fmt.Errorf("%q is not a duration", raw)
	}
	return time.Duration(v), nil
}
