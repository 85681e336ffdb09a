package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource does not exist, either
// in a local store or on the remote API.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is matched by every *ValidationError.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrRemote is matched by every *RemoteError.
var ErrRemote = errors.New("remote error")

// ErrInvariant marks a programming error, such as binding a device to an
// empty trip id. It is never meant to be shown to a user.
var ErrInvariant = errors.New("invariant violation")

// ErrInFlight is returned when an operation is already running and a second
// call arrives before it completes.
var ErrInFlight = errors.New("operation already in flight")

// ValidationError is a user-correctable input problem on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid builds a *ValidationError for field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RemoteError wraps a failure returned by the remote API collaborator.
// Op names the operation that failed (e.g. "create trip").
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRemote) match while Unwrap still exposes the
// cause (e.g. ErrNotFound).
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
