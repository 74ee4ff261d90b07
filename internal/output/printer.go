package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"

	"objshell/pkg/objtypes"
)

// Printer writes semantic text and invocation results to a writer. It is safe for
// concurrent use.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	testMode      bool
	silent        bool
	prefix        string
	markdownWidth int

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer:        os.Stdout,
		mode:          ModeAuto,
		markdownWidth: 80,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Plain reports whether the printer strips all styling.
func (p *Printer) Plain() bool {
	return p.mode == ModePlain
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Command echoes an expression.
func (p *Printer) Command(text string) {
	p.output(SemanticCommand, text, true)
}

// Comment outputs a script comment.
func (p *Printer) Comment(text string) {
	p.output(SemanticComment, text, true)
}

// Markdown renders markdown through glamour. Rendering errors fall back to the source text,
// and test mode prints the source unchanged.
func (p *Printer) Markdown(markdown string) {
	rendered, err := p.renderMarkdown(markdown)
	if err != nil {
		rendered = markdown
	}
	p.output(SemanticPlain, rendered, true)
}

// Value renders a result value.
func (p *Printer) Value(value any) {
	if md, ok := value.(objtypes.Markdown); ok {
		p.Markdown(string(md))
		return
	}
	p.output(SemanticValue, FormatValue(value), true)
}

// Result renders an invocation result: its value when invoked, otherwise its diagnostic.
func (p *Printer) Result(result *objtypes.InvocationResult) {
	if result == nil {
		return
	}
	switch result.Status {
	case objtypes.StatusInvoked:
		if result.Value == nil {
			p.Success("ok")
			return
		}
		p.Value(result.Value)
	case objtypes.StatusFailed:
		p.Error(fmt.Sprintf("failed (%s): %s", result.Failure, result.Diagnostic))
	default:
		p.Warning(fmt.Sprintf("not invoked (%s): %s", result.Failure, result.Diagnostic))
	}
}

// FormatValue renders a value as text. Strings, stringers and scalars print directly;
// anything else is serialized as YAML.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case objtypes.Markdown:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%+v", value)
	}
	return strings.TrimRight(string(data), "\n")
}

func (p *Printer) renderMarkdown(markdown string) (string, error) {
	if p.testMode {
		return markdown, nil
	}
	style := glamour.WithAutoStyle()
	if p.mode == ModePlain {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(p.markdownWidth))
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.Trim(rendered, "\n"), nil
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	provider := p.styleProvider
	if provider == nil && p.mode == ModeStyled {
		provider = DefaultTheme()
	}

	var result string
	switch {
	case p.mode == ModePlain:
		result = ansi.Strip(NewPlainStyleProvider().GetStyle(semantic).Render(text))
	case provider != nil:
		result = provider.GetStyle(semantic).Render(text)
	default:
		result = NewPlainStyleProvider().GetStyle(semantic).Render(text)
	}

	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	if p.prefix != "" {
		result = p.prefix + result
	}

	_, _ = fmt.Fprint(p.writer, result)
}
