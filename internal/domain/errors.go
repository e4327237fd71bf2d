package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by commands. Callers match them with errors.Is
// and map them to transport-level responses.
var (
	// ErrValidation means the input violates a value constraint.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the command targets an aggregate whose stream
	// has no creation event.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the command is not legal from the
	// aggregate's current state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrCollaborator means an external service failed or timed out.
	ErrCollaborator = errors.New("collaborator failed")
)

// Validationf builds a validation error with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Transitionf builds an invalid-transition error with a formatted reason.
func Transitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
