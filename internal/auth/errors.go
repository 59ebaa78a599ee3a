package auth

import "errors"

var (
	// ErrUnauthenticated covers missing, malformed, expired, or otherwise
	// unverifiable credentials. Callers must not be able to tell which.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrForbidden covers structurally valid credentials that are not
	// authoritative: the actor is gone, the role diverged, or the role
	// lacks the requested permission.
	ErrForbidden = errors.New("auth: forbidden")

	ErrNotFound     = errors.New("auth: not found")
	ErrConflict     = errors.New("auth: already exists")
	ErrInvalidInput = errors.New("auth: invalid input")

	// ErrInvalidToken indicates the token failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
)
