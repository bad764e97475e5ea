package domain

import (
	"math"
	"time"
)

// Team is a delivery team participating in one session. A team may map to
// an external tracker board via BoardID, but velocity and adjustment are
// session-scoped.
type Team struct {
	ID            string
	SessionID     string
	Name          string
	BoardID       string // external tracker board key, optional
	Velocity      int    // points per sprint
	AdjustmentPct int    // capacity adjustment percentage, 100 = no change

	// SprintOverrides holds explicit per-sprint capacity points keyed by
	// sprint number, taking precedence over the derived capacity.
	SprintOverrides map[int]int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CapacityPoints returns the team's capacity for the given sprint number.
// IP sprints carry no delivery capacity by convention.
func (t *Team) CapacityPoints(sprintNum int, isIPSprint bool) int {
	if isIPSprint {
		return 0
	}
	if t.SprintOverrides != nil {
		if v, ok := t.SprintOverrides[sprintNum]; ok {
			return v
		}
	}
	return int(math.Round(float64(t.Velocity) * float64(t.AdjustmentPct) / 100.0))
}
