package gabanav

import (
	"errors"
	"fmt"
)

// ErrNoWindow is returned for window information when Init opened no window.
var ErrNoWindow = errors.New("gabanav: no window")

// InfrastructureError represents a framework-level failure, such as SDL
// refusing to create a window. These errors are typically fatal.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "open_window")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gabanav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gabanav: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
