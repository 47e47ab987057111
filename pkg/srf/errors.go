package srf

import (
	"fmt"
)

// StatusError is returned when the endpoint answers with a status other
// than 200.
type StatusError struct {
	StatusCode int // HTTP status code
	Status     string
}

// Error returns the error message.
func (e *StatusError) Error() string {
	return fmt.Sprintf("srf: unexpected status code: %d", e.StatusCode)
}

// Is reports whether target is a *StatusError with the same code.
//
// This allows errors.Is(err, &StatusError{StatusCode: 404}).
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// DecodeError is returned when a 200 response body is not a valid song list.
type DecodeError struct {
	Err error // Underlying JSON error
}

// Error returns the error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("srf: failed to decode song list: %v", e.Err)
}

// Unwrap returns the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
