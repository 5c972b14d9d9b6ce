package report

import "errors"

var (
	ErrNotFound          = errors.New("report not found")
	ErrNotAuthorized     = errors.New("actor not authorized for this action")
	ErrInvalidTransition = errors.New("action not valid for current status")
	// ErrContention is transient: a concurrent transition won the row.
	// Callers may retry with freshly reloaded state.
	ErrContention = errors.New("concurrent modification detected")
	// ErrCodeConflict surfaces only after bounded retries of code allocation.
	ErrCodeConflict = errors.New("report code allocation conflict")
)
