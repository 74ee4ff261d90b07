package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objshell/pkg/objtypes"
)

// mockStyleProvider wraps text in [semantic]...[/semantic] markers.
type mockStyleProvider struct {
	available bool
}

type mockStyle struct {
	semantic SemanticType
}

func (m mockStyle) Render(strs ...string) string {
	return "[" + string(m.semantic) + "]" + strings.Join(strs, "") + "[/" + string(m.semantic) + "]"
}

func (m *mockStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	return mockStyle{semantic: semantic}
}

func (m *mockStyleProvider) IsAvailable() bool {
	return m.available
}

func TestPrinterBasicOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	printer.Print("hello")
	printer.Println("world")
	printer.Printf("number: %d", 42)

	result := buffer.String()
	assert.Contains(t, result, "hello")
	assert.Contains(t, result, "world\n")
	assert.Contains(t, result, "number: 42")
}

func TestPrinterSemanticOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	printer.Info("information")
	printer.Success("completed")
	printer.Warning("careful")
	printer.Error("failed")
	printer.Command("new Account( alice )")
	printer.Comment("setup")

	assert.Equal(t, []string{
		"ℹ information",
		"✓ completed",
		"⚠ careful",
		"✗ failed",
		"> new Account( alice )",
		"%% setup",
	}, buffer.Lines())
}

func TestPrinterStyleProviders(t *testing.T) {
	t.Run("available provider styles output", func(t *testing.T) {
		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), WithStyles(&mockStyleProvider{available: true}))

		printer.Info("test message")
		assert.Equal(t, "[info]test message[/info]\n", buffer.String())
	})

	t.Run("unavailable provider falls back to plain", func(t *testing.T) {
		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), WithStyles(&mockStyleProvider{available: false}))

		printer.Info("test message")
		assert.Equal(t, "ℹ test message\n", buffer.String())
	})

	t.Run("plain mode ignores provider", func(t *testing.T) {
		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), WithStyles(&mockStyleProvider{available: true}), PlainText())

		printer.Success("done")
		assert.Equal(t, "✓ done\n", buffer.String())
		assert.True(t, printer.Plain())
	})

	t.Run("plain mode strips escape sequences", func(t *testing.T) {
		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), PlainText())

		printer.Println("\x1b[1mbold\x1b[0m")
		assert.Equal(t, "bold\n", buffer.String())
	})
}

func TestPrinterSilentAndPrefix(t *testing.T) {
	buffer := NewCaptureBuffer()
	NewPrinter(WithWriter(buffer), Silent()).Println("hidden")
	assert.Empty(t, buffer.String())

	NewPrinter(WithWriter(buffer), TestMode(), WithPrefix("[batch] ")).Println("line")
	assert.Equal(t, "[batch] line\n", buffer.String())
}

type pair struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "nil"},
		{"string", "hello", "hello"},
		{"int", int64(42), "42"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"stringer", 90 * time.Second, "1m30s"},
		{"markdown", objtypes.Markdown("# Title"), "# Title"},
		{"struct as yaml", pair{Left: 1, Right: 2}, "left: 1\nright: 2"},
		{"slice as yaml", []string{"a", "b"}, "- a\n- b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}

func TestPrinterResult(t *testing.T) {
	tests := []struct {
		name     string
		result   *objtypes.InvocationResult
		expected string
	}{
		{"invoked value", objtypes.Invoked(int64(7)), "7\n"},
		{"invoked without value", objtypes.Invoked(nil), "✓ ok\n"},
		{"not invoked", objtypes.NotInvoked(objtypes.FailureResolution, "no constructor"), "⚠ not invoked (resolution): no constructor\n"},
		{"failed", objtypes.Failed(objtypes.FailureAccess, "audit is not exposed"), "✗ failed (access): audit is not exposed\n"},
		{"nil result", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CaptureOutput(func(p *Printer) {
				p.Result(tt.result)
			})
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPrinterMarkdown(t *testing.T) {
	t.Run("test mode prints source", func(t *testing.T) {
		out := CaptureOutput(func(p *Printer) {
			p.Value(objtypes.Markdown("| a |\n|---|\n| b |"))
		})
		assert.Equal(t, "| a |\n|---|\n| b |\n", out)
	})

	t.Run("plain mode renders without escapes", func(t *testing.T) {
		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), PlainText(), WithMarkdownWidth(60))

		printer.Markdown("# Commands\n\nUse **new** to construct.")
		out := buffer.String()
		require.NotEmpty(t, out)
		assert.Contains(t, out, "Commands")
		assert.Contains(t, out, "construct")
		assert.NotContains(t, out, "\x1b[")
	})
}

func TestCaptureBufferMethods(t *testing.T) {
	buffer := NewCaptureBuffer()
	assert.Equal(t, []string{}, buffer.Lines())

	_, err := buffer.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, buffer.Lines())
	assert.True(t, buffer.Contains("two"))

	buffer.Reset()
	assert.Empty(t, buffer.String())
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, "default", theme.Name)
	assert.NotNil(t, theme.GetStyle(SemanticError))
	assert.Contains(t, theme.GetStyle(SemanticPlain).Render("text"), "text")
}

func BenchmarkPrinterPlainOutput(b *testing.B) {
	printer := NewPrinter(WithWriter(NewCaptureBuffer()), TestMode())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		printer.Info("benchmark message")
	}
}
