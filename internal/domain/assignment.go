package domain

import "time"

// Assignment places one feature onto one team across a contiguous sprint
// range. A feature holds at most one active assignment per session;
// assigning an already-assigned feature replaces the prior placement.
type Assignment struct {
	ID               string
	SessionID        string
	FeatureKey       string
	TeamID           string
	StartSprint      int
	EndSprint        int
	AllocatedPoints  int
	IsManualOverride bool
	Rationale        string // optional AI rationale text
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SpansSprint reports whether the assignment's range includes the given
// sprint number.
func (a *Assignment) SpansSprint(num int) bool {
	return num >= a.StartSprint && num <= a.EndSprint
}
