package planning

import (
	"sort"

	"github.com/piplan-io/piplan/internal/domain"
)

// PlanState is a read-only snapshot of one session's planning inputs:
// the sprint calendar, the participating teams, the feature backlog and
// the current assignment set. Validation and reconciliation operate on
// a PlanState and never mutate it.
type PlanState struct {
	Session     *domain.Session
	Sprints     []*domain.Sprint              // sorted by Num
	Teams       map[string]*domain.Team       // by team ID
	Features    map[string]*domain.Feature    // by feature key
	Assignments map[string]*domain.Assignment // by feature key, at most one each
}

// NewPlanState assembles a snapshot from loaded entities. Sprints are
// sorted by sequence number; assignments are keyed by feature key.
func NewPlanState(
	session *domain.Session,
	sprints []*domain.Sprint,
	teams []*domain.Team,
	features []*domain.Feature,
	assignments []*domain.Assignment,
) *PlanState {
	s := &PlanState{
		Session:     session,
		Sprints:     make([]*domain.Sprint, len(sprints)),
		Teams:       make(map[string]*domain.Team, len(teams)),
		Features:    make(map[string]*domain.Feature, len(features)),
		Assignments: make(map[string]*domain.Assignment, len(assignments)),
	}
	copy(s.Sprints, sprints)
	sort.Slice(s.Sprints, func(i, j int) bool { return s.Sprints[i].Num < s.Sprints[j].Num })
	for _, t := range teams {
		s.Teams[t.ID] = t
	}
	for _, f := range features {
		s.Features[f.Key] = f
	}
	for _, a := range assignments {
		s.Assignments[a.FeatureKey] = a
	}
	return s
}

// SprintByNum returns the sprint with the given sequence number, or nil.
func (s *PlanState) SprintByNum(num int) *domain.Sprint {
	for _, sp := range s.Sprints {
		if sp.Num == num {
			return sp
		}
	}
	return nil
}

// MaxSprintNum returns the highest sprint number in the calendar.
func (s *PlanState) MaxSprintNum() int {
	if len(s.Sprints) == 0 {
		return 0
	}
	return s.Sprints[len(s.Sprints)-1].Num
}

// withAssignments returns a shallow copy of the state with a different
// assignment set. Used by the reconciler to validate candidates against
// the cumulative accepted set without touching the live state.
func (s *PlanState) withAssignments(assignments map[string]*domain.Assignment) *PlanState {
	clone := *s
	clone.Assignments = assignments
	return &clone
}
