package engine

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/shiftgrid/internal/rules"
)

var (
	// ErrValidation indicates bad input from the caller.
	ErrValidation = errors.New("validation failed")

	// ErrConfirmRequired indicates an operation that would discard data and
	// needs an explicit confirmation (--yes in the CLI).
	ErrConfirmRequired = errors.New("confirmation required")

	// ErrRejected indicates an edit the work rules do not allow.
	ErrRejected = errors.New("change rejected by work rules")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// RejectedError carries the verdict of a rejected edit.
type RejectedError struct {
	Verdict rules.Verdict
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRejected, e.Message)
}

// Is lets errors.Is(err, ErrRejected) match a *RejectedError.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}
