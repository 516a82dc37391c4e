package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfigValidation = errors.New("config validation error")
	ErrConfiguration    = errors.New("configuration error")
	ErrNotFound         = errors.New("not found")
	ErrSourceMissing    = errors.New("source missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrMissingInput     = errors.New("missing input")
	ErrToolExecution    = errors.New("tool execution error")
	ErrProbe            = errors.New("probe error")
	ErrResolution       = errors.New("resolution error")
	ErrTransfer         = errors.New("transfer error")
)

// Wrap builds an error message that includes step context while tagging it with
// the provided marker so callers can classify the failure with errors.Is. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrToolExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, or "unknown".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfigValidation):
		return "config_validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSourceMissing):
		return "source_missing"
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrToolExecution):
		return "tool_execution"
	case errors.Is(err, ErrProbe):
		return "probe"
	case errors.Is(err, ErrResolution):
		return "resolution"
	case errors.Is(err, ErrTransfer):
		return "transfer"
	default:
		return "unknown"
	}
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
