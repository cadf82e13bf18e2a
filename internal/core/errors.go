package core

import (
	"errors"

	"nexta-backend-go/internal/db"
)

var (
	// ErrUserNotFound is returned when a user document is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when a user has no profile of the requested kind.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("action not allowed for this account")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Workflow errors raised by the repositories.
var (
	ErrNotFound          = db.ErrNotFound
	ErrAlreadyApplied    = db.ErrAlreadyApplied
	ErrInvalidTransition = db.ErrInvalidTransition
	ErrEmptyCart         = db.ErrEmptyCart
)
