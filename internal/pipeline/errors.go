package pipeline

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid config")

// ConfigError is returned before any network or disk activity when a
// Request is inconsistent.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
