// Package common defines shared sentinel errors used across the service
// layers of Rollbook. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors. ErrInvalidToken covers missing, malformed, expired and
	// badly signed tokens alike; ErrInvalidCredentials is returned for both
	// unknown usernames and wrong passwords so login failures stay
	// indistinguishable to the caller.
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
