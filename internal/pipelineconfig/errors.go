package pipelineconfig

import (
	"fmt"
	"strings"

	"sermonpipe/internal/services"
)

// ValidationError enumerates every problem found in a configuration document.
type ValidationError struct {
	Path       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", services.ErrConfigValidation, e.Path, strings.Join(e.Violations, "; "))
}

// Unwrap lets errors.Is match services.ErrConfigValidation.
func (e *ValidationError) Unwrap() error {
	return services.ErrConfigValidation
}

func (e *ValidationError) add(format string, args ...any) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
