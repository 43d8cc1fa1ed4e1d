package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUserCanceled = errors.New("user canceled")
)

// APIError represents a failure from the backend API
type APIError struct {
	Op         string // Operation: "list", "update", "delete", etc.
	TaskID     string // Optional: specific task ID
	StatusCode int    // HTTP status, 0 when the request never completed
	Message    string // Human-readable context
	Err        error  // Underlying error
}

func (e *APIError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("backend %s [%s]: %s", e.Op, e.TaskID, e.reason())
	}
	return fmt.Sprintf("backend %s: %s", e.Op, e.reason())
}

func (e *APIError) reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
