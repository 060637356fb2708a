package core

import (
	"errors"
	"fmt"
)

// Request errors, rendered as {"details": <message>}
var (
	ErrInvalidRequestData   = errors.New("Invalid data")          // 400
	ErrRecordNotFound       = errors.New("record not found")      // 404
	ErrInvalidAuthorization = errors.New("Invalid authorization") // 401
)

// Storage errors
var (
	ErrUserExists      = errors.New("user already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// ErrInvalidSession covers a missing, malformed or expired session token.
// It matches ErrInvalidAuthorization so the HTTP layer renders a 401.
var ErrInvalidSession = fmt.Errorf("invalid session: %w", ErrInvalidAuthorization)

// Config errors (server-side configuration)
var (
	ErrDBAdapterRequired   = errors.New("database adapter is required")
	ErrHTTPAdapterRequired = errors.New("http adapter is required")
)

// NotFoundError reports a record that is absent or not visible to the caller.
// Ownership mismatches use the same error on purpose.
type NotFoundError struct {
	Entity string
	ID     string
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Unknown %s id: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}
