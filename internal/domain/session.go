package domain

import (
	"fmt"
	"time"
)

type Session struct {
	ID               string
	Name             string
	Status           SessionStatus
	StartDate        time.Time
	SprintCount      int
	SprintLengthDays int
	IncludeIPSprint  bool
	CurrentVersion   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TotalSprints returns the number of sprints in the session calendar,
// including the trailing IP sprint when present.
func (s *Session) TotalSprints() int {
	if s.IncludeIPSprint {
		return s.SprintCount + 1
	}
	return s.SprintCount
}

// Editable reports whether calendar-shaping fields may still change.
func (s *Session) Editable() bool {
	return s.Status == SessionDraft || s.Status == SessionPlanning
}

// Transition moves the session to a new status, enforcing the state machine.
func (s *Session) Transition(to SessionStatus) error {
	if !CanTransition(s.Status, to) {
		return fmt.Errorf("%w: session status %s -> %s", ErrInvalidTransition, s.Status, to)
	}
	s.Status = to
	return nil
}

// Validate checks structural constraints before a session is persisted.
func (s *Session) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("session name is required")
	}
	if s.SprintCount < 1 {
		return fmt.Errorf("sprint count must be at least 1, got %d", s.SprintCount)
	}
	if s.SprintLengthDays < 1 {
		return fmt.Errorf("sprint length must be at least 1 day, got %d", s.SprintLengthDays)
	}
	return nil
}
