package fractal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidViewport indicates a viewport with non-positive extent.
	ErrInvalidViewport = errors.New("fractal: viewport width and height must be positive")

	// ErrInvalidBudget indicates an iteration budget below one.
	ErrInvalidBudget = errors.New("fractal: iteration budget must be at least 1")

	// ErrInvalidThreshold indicates a non-positive divergence threshold.
	ErrInvalidThreshold = errors.New("fractal: divergence threshold must be positive")

	// ErrUnknownMode indicates a coloring mode name that is not registered.
	ErrUnknownMode = errors.New("fractal: unknown coloring mode")
)

// ConfigError wraps a validation failure with the offending field.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
