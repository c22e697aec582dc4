package navigation

import (
	"errors"
	"fmt"
)

// Sentinel errors for back stack misuse.
var (
	// ErrNoSavedState indicates a restore was attempted for an entry that was
	// never popped with state saving, or whose snapshot was already consumed.
	ErrNoSavedState = errors.New("no saved state for back stack entry")

	// ErrNotOnBackStack indicates a pop targeted an entry that is not on the stack.
	ErrNotOnBackStack = errors.New("entry is not on the back stack")

	// ErrUnknownDestination indicates a destination lookup found nothing.
	ErrUnknownDestination = errors.New("unknown destination")
)

// StateError is a programming error in how a navigator state was driven:
// restoring something that was never saved, popping an entry that was never
// pushed. These are raised as panics since a test harness cannot recover
// from a test that misuses it.
type StateError struct {
	Op      string // Operation that failed (e.g., "restore", "pop")
	EntryID string // ID of the entry involved, if any
	Err     error  // Underlying error
}

func (e *StateError) Error() string {
	if e.EntryID != "" {
		return fmt.Sprintf("navigation: %s %s: %v", e.Op, e.EntryID, e.Err)
	}
	return fmt.Sprintf("navigation: %s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// NewStateError creates a new state error.
func NewStateError(op, entryID string, err error) *StateError {
	return &StateError{Op: op, EntryID: entryID, Err: err}
}

// IsStateError checks if an error is a state error.
func IsStateError(err error) bool {
	var stateErr *StateError
	return errors.As(err, &stateErr)
}
