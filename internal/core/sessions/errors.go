package sessions

import "errors"

var (
	// ErrSessionNotFound is returned for unknown session IDs
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session exists but is past its expiry
	ErrSessionExpired = errors.New("session expired")
)
