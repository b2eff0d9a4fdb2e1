package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidation       = errors.New("invalid todoist record")
	ErrInvalidFilter    = errors.New("exactly one of comment id, task id or project id is required")
	ErrUnexpectedStatus = errors.New("unexpected todoist status")
)

// StatusError is returned when Todoist answers with a status other than
// the one the operation expects.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected todoist status %d", e.Code)
	}
	return fmt.Sprintf("unexpected todoist status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// UserError carries a message that is safe to show in chat. The cause is
// kept for logs and errors.Is checks.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// Message returns the chat-safe text for err.
func Message(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return "Something went wrong. Please try again later."
}
