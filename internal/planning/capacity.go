package planning

import (
	"time"

	"github.com/piplan-io/piplan/internal/domain"
)

// DateKey is the canonical date format used for holiday lookups.
const DateKey = "2006-01-02"

// WorkingDays counts business days in [start, end] inclusive, excluding
// weekends and any date present in the holiday set (keyed by DateKey).
// Idempotent over identical inputs; working-day counts are always
// derived from this function, never stored authoritatively.
func WorkingDays(start, end time.Time, holidays map[string]bool) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if holidays[d.Format(DateKey)] {
			continue
		}
		days++
	}
	return days
}

// SprintCapacity is the derived load picture for one (team, sprint) pair.
type SprintCapacity struct {
	TeamID          string
	SprintNum       int
	CapacityPoints  int
	AllocatedPoints int
	OverCapacity    bool
	OverBy          int
}

// AllocatedPoints sums allocated points over all assignments whose range
// includes the given sprint for the given team.
func AllocatedPoints(assignments map[string]*domain.Assignment, teamID string, sprintNum int) int {
	total := 0
	for _, a := range assignments {
		if a.TeamID == teamID && a.SpansSprint(sprintNum) {
			total += a.AllocatedPoints
		}
	}
	return total
}

// CapacitySummary computes SprintCapacity rows for one team across the
// whole calendar. Recomputed on every call; nothing is cached.
func CapacitySummary(state *PlanState, teamID string) []SprintCapacity {
	team, ok := state.Teams[teamID]
	if !ok {
		return nil
	}
	rows := make([]SprintCapacity, 0, len(state.Sprints))
	for _, sp := range state.Sprints {
		capPts := team.CapacityPoints(sp.Num, sp.IsIPSprint)
		alloc := AllocatedPoints(state.Assignments, teamID, sp.Num)
		row := SprintCapacity{
			TeamID:          teamID,
			SprintNum:       sp.Num,
			CapacityPoints:  capPts,
			AllocatedPoints: alloc,
		}
		if alloc > capPts {
			row.OverCapacity = true
			row.OverBy = alloc - capPts
		}
		rows = append(rows, row)
	}
	return rows
}
