package domain

import "time"

// PlanVersion is an immutable named snapshot of a session's assignment
// set. Versions are append-only; restoring one replaces the live
// assignment set with the snapshot's contents.
type PlanVersion struct {
	ID          string
	SessionID   string
	Label       string
	Comment     string
	Assignments []Assignment
	CreatedAt   time.Time
}
