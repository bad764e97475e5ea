package planning

import "fmt"

// Proposed is a candidate placement of one feature, either manual or
// AI-generated. Validation never distinguishes the source beyond the
// overflow policy carried in Options.
type Proposed struct {
	FeatureKey      string
	TeamID          string
	StartSprint     int
	EndSprint       int
	AllocatedPoints int // 0 means "use the feature's total points"
}

// Options controls which checks apply to a validation pass.
type Options struct {
	// RespectDependencies rejects placements that start before every
	// blocked_by dependency has been assigned and finished.
	RespectDependencies bool
	// AllowOverflow accepts over-capacity placements with a warning
	// instead of rejecting them. Manual drag-style assignments may opt
	// in; AI-proposed assignments never do.
	AllowOverflow bool
}

type RejectCode string

const (
	RejectUnknownFeature RejectCode = "unknown_feature"
	RejectUnknownTeam    RejectCode = "unknown_team"
	RejectInvalidRange   RejectCode = "invalid_range"
	RejectDependency     RejectCode = "dependency_unmet"
	RejectOverCapacity   RejectCode = "over_capacity"
)

type WarningCode string

const (
	WarnSpanMismatch    WarningCode = "span_mismatch"
	WarnDependencyCycle WarningCode = "dependency_cycle"
	WarnOverflowAllowed WarningCode = "overflow_allowed"
	WarnBlockerPending  WarningCode = "blocker_unassigned"
)

type Warning struct {
	Code    WarningCode
	Message string
}

// Result is the outcome of validating one proposed assignment.
type Result struct {
	Accepted bool
	Code     RejectCode // set when rejected
	Message  string
	Sprint   int // offending sprint for over_capacity
	OverBy   int // points over capacity for over_capacity
	Warnings []Warning
}

func rejected(code RejectCode, format string, args ...any) Result {
	return Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate is the single gate for every assignment, manual or AI-proposed.
// It is pure: identical state and proposal always yield identical results,
// and the state is never mutated. Checks run in order; the first failure
// wins. Committing an accepted proposal is the caller's job.
func Validate(state *PlanState, p Proposed, opts Options) Result {
	feature, ok := state.Features[p.FeatureKey]
	if !ok {
		return rejected(RejectUnknownFeature, "feature %q not in session backlog", p.FeatureKey)
	}
	team, ok := state.Teams[p.TeamID]
	if !ok {
		return rejected(RejectUnknownTeam, "team %q not in session", p.TeamID)
	}

	if p.EndSprint < p.StartSprint {
		return rejected(RejectInvalidRange, "end sprint %d before start sprint %d", p.EndSprint, p.StartSprint)
	}
	if p.StartSprint < 1 || p.EndSprint > state.MaxSprintNum() {
		return rejected(RejectInvalidRange, "sprint range [%d,%d] outside session sprints [1,%d]",
			p.StartSprint, p.EndSprint, state.MaxSprintNum())
	}

	var warnings []Warning

	span := p.EndSprint - p.StartSprint + 1
	if feature.EstimatedSprints >= 1 && span != feature.EstimatedSprints {
		warnings = append(warnings, Warning{
			Code: WarnSpanMismatch,
			Message: fmt.Sprintf("range spans %d sprints, feature estimates %d",
				span, feature.EstimatedSprints),
		})
	}

	graph := BuildGraph(state.Features)
	if graph.HasCycle() {
		warnings = append(warnings, Warning{
			Code:    WarnDependencyCycle,
			Message: "feature backlog contains a dependency cycle",
		})
	}
	if opts.RespectDependencies {
		earliest, unassigned := graph.EarliestStart(p.FeatureKey, state.Assignments)
		if len(unassigned) > 0 {
			r := rejected(RejectDependency, "blocked by unassigned feature(s): %v", unassigned)
			r.Warnings = warnings
			return r
		}
		if p.StartSprint < earliest {
			r := rejected(RejectDependency, "blocked until sprint %d, proposed start %d", earliest, p.StartSprint)
			r.Warnings = warnings
			return r
		}
	} else if len(graph.BlockersOf(p.FeatureKey)) > 0 {
		if _, unassigned := graph.EarliestStart(p.FeatureKey, state.Assignments); len(unassigned) > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnBlockerPending,
				Message: fmt.Sprintf("blocker(s) not yet assigned: %v", unassigned),
			})
		}
	}

	points := p.AllocatedPoints
	if points == 0 {
		points = feature.Points
	}

	// Capacity across the touched range, including this proposal and
	// excluding any prior assignment of the same feature (assign is an
	// upsert that would replace it).
	for num := p.StartSprint; num <= p.EndSprint; num++ {
		sp := state.SprintByNum(num)
		if sp == nil {
			return rejected(RejectInvalidRange, "sprint %d missing from calendar", num)
		}
		capPts := team.CapacityPoints(num, sp.IsIPSprint)
		alloc := points
		for key, a := range state.Assignments {
			if key == p.FeatureKey {
				continue
			}
			if a.TeamID == p.TeamID && a.SpansSprint(num) {
				alloc += a.AllocatedPoints
			}
		}
		if alloc > capPts {
			if !opts.AllowOverflow {
				r := rejected(RejectOverCapacity, "sprint %d over capacity by %d points", num, alloc-capPts)
				r.Sprint = num
				r.OverBy = alloc - capPts
				r.Warnings = warnings
				return r
			}
			warnings = append(warnings, Warning{
				Code:    WarnOverflowAllowed,
				Message: fmt.Sprintf("sprint %d over capacity by %d points (manual overflow)", num, alloc-capPts),
			})
		}
	}

	return Result{Accepted: true, Warnings: warnings}
}
