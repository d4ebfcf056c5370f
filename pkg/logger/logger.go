// Package logger provides structured, leveled, component-scoped logging for
// the decoder core.
package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Config holds logger configuration.
type Config struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

// Logger is a structured logger with component scoping.
type Logger struct {
	inner *charmlog.Logger
}

// Field represents a structured logging key-value pair.
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new Logger from Config.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := charmlog.Options{
		Level:           parseLevel(cfg.Level),
		ReportTimestamp: true,
	}
	if strings.EqualFold(cfg.Format, "json") {
		opts.Formatter = charmlog.JSONFormatter
	}

	return &Logger{inner: charmlog.NewWithOptions(output, opts)}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{inner: l.inner.WithPrefix(component)}
}

// Debug logs a debug-level message with optional fields.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.inner.Debug(msg, flatten(fields)...)
}

// Info logs an info-level message with optional fields.
func (l *Logger) Info(msg string, fields ...Field) {
	l.inner.Info(msg, flatten(fields)...)
}

// Warn logs a warning-level message with optional fields.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.inner.Warn(msg, flatten(fields)...)
}

// Error logs an error-level message with optional fields.
func (l *Logger) Error(msg string, fields ...Field) {
	l.inner.Error(msg, flatten(fields)...)
}

func flatten(fields []Field) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func parseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Field constructors.

func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Int64(key string, val int64) Field     { return Field{Key: key, Value: val} }
func Uint(key string, val uint) Field       { return Field{Key: key, Value: val} }
func Uint32(key string, val uint32) Field   { return Field{Key: key, Value: val} }
func Uint64(key string, val uint64) Field   { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field       { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }

// Error creates an error field; a nil error logs as "nil" rather than panicking.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "nil"}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, val interface{}) Field { return Field{Key: key, Value: val} }
