package domain

import "time"

// Sprint is one slot of a session's calendar. The calendar is generated
// once from the session's start date and sprint length; sprints are
// immutable afterwards except for a full regeneration when the holiday
// calendar changes.
type Sprint struct {
	ID         string
	SessionID  string
	Num        int // 1..N, N+1 for the IP sprint
	StartDate  time.Time
	EndDate    time.Time
	IsIPSprint bool
	CreatedAt  time.Time
}
