package domain

import "errors"

var (
	// ErrInvalidTransition indicates a session status change that the
	// state machine does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")
)
