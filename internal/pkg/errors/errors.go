package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrNotConnected is returned when an operation runs before the store connection exists.
	ErrNotConnected = errors.New("not connected to database")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation marks a manual-edit value that failed its field rule.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition marks a pipeline status transition outside the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)
