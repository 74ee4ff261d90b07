// Package logger provides centralized logging for objshell.
// Components log structured key/value pairs through charmbracelet/log.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout objshell.
var Logger *log.Logger

// output is where the global logger and component loggers write.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets up the global logger. An empty level falls back to OBJSHELL_LOG_LEVEL and
// then to "warn". In test mode output is deterministic and info-level.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("OBJSHELL_LOG_LEVEL"))
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		w = file
	}
	SetOutput(w)
	Logger.SetLevel(ParseLevel(level))

	if testMode {
		Logger.SetLevel(log.InfoLevel)
	}
	return nil
}

// SetOutput redirects the global logger and every component logger created afterwards.
func SetOutput(w io.Writer) {
	output = w
	level := log.WarnLevel
	if Logger != nil {
		level = Logger.GetLevel()
	}
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name to a log level, defaulting to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// Expression logs an expression handed to the command set.
func Expression(expression string, status string) {
	Debug("Expression", "expression", expression, "status", status)
}

func levelStyle(name string, background string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(name).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color("15"))
}

// NewStyledLogger creates a component logger (e.g. "TypeRegistry", "Dispatch") with level
// badges and highlighted keys. It shares the global logger's output and level.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", "240")
	styles.Levels[log.InfoLevel] = levelStyle("INFO", "33")
	styles.Levels[log.WarnLevel] = levelStyle("WARN", "214")
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", "196")
	styles.Levels[log.FatalLevel] = levelStyle("FATAL", "88")

	styles.Keys["type"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["id"] = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styles.Keys["expression"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["status"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["failure"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	styles.Values["type"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
