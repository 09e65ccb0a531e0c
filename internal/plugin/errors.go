package plugin

import "fmt"

// Error wraps a failure raised while executing a plugin function.
type Error struct {
	// Plugin identifies the failing plugin.
	Plugin string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Plugin, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
