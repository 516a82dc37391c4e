package logging

import (
	"log/slog"
	"time"
)

// Attr is a structured logging field.
type Attr = slog.Attr

func Any(key string, value any) Attr                { return slog.Any(key, value) }
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }
func Int(key string, value int) Attr                { return slog.Int(key, value) }
func String(key, value string) Attr                 { return slog.String(key, value) }

// Error records err under the "error" key; a nil error is rendered as "none".
func Error(err error) Attr {
	if err == nil {
		return slog.String(FieldError, "none")
	}
	return slog.String(FieldError, err.Error())
}

// Args converts attrs into the variadic form slog.Logger methods take.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with component. A nil logger yields a no-op
// logger so wiring code never has to nil-check.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
