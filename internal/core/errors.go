package core

import (
	"errors"
	"fmt"
)

// Lifecycle misuse errors. These are surfaced to the caller immediately and
// cause no state change.
var (
	// ErrAlreadyActive is returned when a session start is attempted while
	// another session is still running.
	ErrAlreadyActive = errors.New("a session is already active")
	// ErrNoActiveSession is returned when a session end is attempted with
	// no session running.
	ErrNoActiveSession = errors.New("no active session")
)

// ValidationError rejects invalid input before any durable write. It is
// never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a durable-store failure that survived the retry budget.
// Callers should treat it as recoverable and may re-drive the operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
