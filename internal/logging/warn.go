package logging

import (
	"log/slog"
	"slices"
)

// defaultImpact is attached to warnings whose caller did not say what the
// operator loses.
const defaultImpact = "run continues"

// WarnWithContext logs a warning classified by eventType. Every such warning
// carries event_type and impact so operators can filter non-fatal problems
// (missing cleanup targets, failed date lookups) out of a run log.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	has := func(key string) bool {
		return slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == key })
	}
	if !has(FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !has(FieldImpact) {
		attrs = append(attrs, String(FieldImpact, defaultImpact))
	}
	logger.Warn(msg, Args(attrs...)...)
}
