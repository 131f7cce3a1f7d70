package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the URL shortener application

// ErrNotFound is the parent of every "no such record" condition.
// Ownership mismatches are reported with it too.
var ErrNotFound = errors.New("not found")

// ErrShortCodeNotFound is returned when a short code doesn't exist in the database
// (or doesn't belong to the caller).
var ErrShortCodeNotFound = fmt.Errorf("short code %w", ErrNotFound)

// ErrUserNotFound is returned when a user id doesn't exist in the database.
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

// ErrUnauthorized is returned when the credential is missing, malformed or expired.
var ErrUnauthorized = errors.New("could not validate user")

// ErrInvalidCredentials is returned when a username/password pair does not match.
// Unknown user, wrong password and inactive account all yield this same error.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

// ErrForbidden is returned when a valid identity lacks the required role,
// or when the current password given for a password change is wrong.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidURL is returned when a long URL is not absolute or lacks a host.
var ErrInvalidURL = errors.New("invalid URL format")

// ErrInvalidRole is returned when a role outside {user, admin} is requested.
var ErrInvalidRole = errors.New("invalid role")

// ErrShortCodeExists is returned by the repository when an insert hits the
// unique index on short_code.
var ErrShortCodeExists = errors.New("short code already exists")

// ErrUserExists is returned when the username or email is already taken.
var ErrUserExists = errors.New("user already exists")

// ErrShortCodeGenerationFailed is returned when we can't generate a unique short code
// within the configured number of attempts.
var ErrShortCodeGenerationFailed = errors.New("failed to generate unique short code")

// ErrURLCheckFailed is returned when URL health check fails
type ErrURLCheckFailed struct {
	URL    string
	Reason string
}

func (e ErrURLCheckFailed) Error() string {
	return fmt.Sprintf("failed to check URL %s: %s", e.URL, e.Reason)
}
