package service

import "errors"

var (
	// ErrSessionNotEditable indicates an attempt to change calendar or
	// backlog shape on a session past the planning stage.
	ErrSessionNotEditable = errors.New("session is not editable in its current status")

	// ErrProposerDisabled indicates the AI proposer subsystem is not
	// configured; Preview cannot run without it.
	ErrProposerDisabled = errors.New("ai proposer is not enabled")

	// ErrVersionForeign indicates a restore was attempted with a version
	// that belongs to a different session.
	ErrVersionForeign = errors.New("plan version belongs to a different session")

	// ErrCyclicBacklog indicates session activation was refused because
	// the backlog contains a dependency cycle and the session policy
	// blocks activation on cycles.
	ErrCyclicBacklog = errors.New("feature backlog contains a dependency cycle")
)
