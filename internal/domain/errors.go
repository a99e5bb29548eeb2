package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConflictError reports a scheduling overlap for an internal participant.
// UserID identifies the first conflicting participant when the overlap was
// found by an ordered check; it is empty when the overlap was caught by a
// storage constraint instead.
type ConflictError struct {
	UserID string
}

func (e *ConflictError) Error() string {
	if e.UserID == "" {
		return "schedule conflict"
	}
	return fmt.Sprintf("schedule conflict for user %s", e.UserID)
}

// ValidationError carries the messages for a malformed request. It is always
// returned before any write has happened.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
