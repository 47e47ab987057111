package auth

import (
	"errors"
)

// Errors reported by the auth flow. Failures that the flow has already
// explained to the user are recognised by Reported.
var (
	// ErrInvalidEmail is returned when an email does not pass validation
	ErrInvalidEmail = errors.New("auth: invalid email format")

	// ErrInvalidPassword is returned when a password does not meet the policy
	ErrInvalidPassword = errors.New("auth: invalid password format")

	// ErrInvalidCredentials is returned when no record matches email and password
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrLockedOut is returned once the maximum number of failed logins is reached.
	// The flow stays locked for the rest of its lifetime.
	ErrLockedOut = errors.New("auth: locked out after too many failed login attempts")

	// ErrEmailNotFound is returned by ForgotPassword for unknown emails
	ErrEmailNotFound = errors.New("auth: email not found")

	// ErrResetRejected is returned when email and security answer do not match
	ErrResetRejected = errors.New("auth: invalid email or security answer")
)

// Reported reports whether err is an auth outcome the user has already been
// told about. Anything else (store or prompt failures) should be propagated.
func Reported(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrLockedOut),
		errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrResetRejected):
		return true
	default:
		return false
	}
}
