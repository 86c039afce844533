package client

import (
	"errors"
	"fmt"
)

// Sentinel classifications for server rejections. Callers dispatch with
// errors.Is instead of matching status codes or message strings.
var (
	ErrNotFound      = errors.New("role not found")
	ErrForbidden     = errors.New("operation not allowed")
	ErrProtectedRole = errors.New("role is protected")
	ErrRoleInUse     = errors.New("role has assigned users")
	ErrRoleExists    = errors.New("role title already exists")

	// ErrSaveInFlight rejects a mutation started while a previous
	// mutation is still waiting on the server.
	ErrSaveInFlight = errors.New("a save is already in flight")
)

// AuthError reports that the server no longer recognizes the session.
// The caller should send the user back through sign-in.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// APIError is a rejection the server produced deliberately: a failed
// envelope with a status code and a message meant for the user.
type APIError struct {
	Status  int
	Message string
	err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// NetworkError covers everything below the API contract: transport
// failures, timeouts and responses that are not a valid envelope.
type NetworkError struct {
	Op  string
	err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.err)
}

func (e *NetworkError) Unwrap() error {
	return e.err
}
