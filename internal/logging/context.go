package logging

import (
	"context"
	"log/slog"

	"sermonpipe/internal/services"
)

// Standard field keys.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	// FieldStep holds a step label such as "Trim".
	FieldStep = "step"
	// FieldKind holds the media kind, audio or video.
	FieldKind      = "kind"
	FieldEventType = "event_type"
	// FieldImpact is the operator-facing consequence of a warning.
	FieldImpact = "impact"
	FieldError  = "error"
)

// ContextFields returns the run, kind and step fields carried by ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if kind, ok := services.KindFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldKind, kind))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	return fields
}

// WithContext returns logger with the fields from ctx attached.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(Args(fields...)...)
	}
	return logger
}
