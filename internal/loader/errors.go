package loader

import (
	"errors"
	"fmt"
)

// Common loader failures.
var (
	// ErrUnsupported is returned for refs with no registered format.
	ErrUnsupported = errors.New("unsupported config format")

	// ErrNotConfig is returned when a loaded module does not produce a
	// config table.
	ErrNotConfig = errors.New("module did not produce a config table")
)

// LoadError wraps a failure to load one config module. Load failures
// are fatal to a compile; there is no partial fallback.
type LoadError struct {
	// Ref is the module reference as written in the config.
	Ref string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Ref, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
