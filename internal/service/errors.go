package service

import (
	"errors"
	"fmt"
)

var (
	// Validation failures (HTTP 400). ErrValidation is the class;
	// concrete failures wrap it with a user-facing message.
	ErrValidation   = errors.New("validation failed")
	ErrEmptyComment = fmt.Errorf("%w: comment text required", ErrValidation)
	ErrEmptyMessage = fmt.Errorf("%w: message text required", ErrValidation)

	// Invalid operations (HTTP 400).
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")

	// Missing entities or membership (HTTP 404).
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrNotMember    = errors.New("conversation not found")

	// Authentication (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration conflicts, reported as validation failures.
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", ErrValidation)
	ErrEmailTaken    = fmt.Errorf("%w: email already exists", ErrValidation)
)

// validationError builds a user-facing validation failure.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
