package planning

import (
	"context"

	"github.com/piplan-io/piplan/internal/domain"
)

// Candidate is one entry of an externally proposed plan, in proposer order.
type Candidate struct {
	Proposed
	Rationale string
}

// AcceptedCandidate is a candidate that passed validation against the
// cumulative state of this reconciliation pass.
type AcceptedCandidate struct {
	Candidate
	Warnings []Warning
}

// RejectedCandidate is a candidate the validator refused, with the reason.
type RejectedCandidate struct {
	FeatureKey string
	Code       RejectCode
	Message    string
	Sprint     int
	OverBy     int
}

// ReconcileResult is the dry-run diff of a candidate plan against the
// current state. Nothing is committed by reconciliation itself.
type ReconcileResult struct {
	Accepted        []AcceptedCandidate
	Rejected        []RejectedCandidate
	AlreadyAssigned []string
}

// Reconcile runs every candidate through Validate in proposer order,
// against the cumulative state including previously accepted candidates
// of the same pass. The proposer's own capacity reasoning is re-verified
// here, never trusted. Cancellation is checked between candidates; a
// cancelled pass leaves no trace since nothing commits during reconcile.
func Reconcile(ctx context.Context, state *PlanState, candidates []Candidate, opts Options) (*ReconcileResult, error) {
	overlay := make(map[string]*domain.Assignment, len(state.Assignments)+len(candidates))
	for k, v := range state.Assignments {
		overlay[k] = v
	}
	working := state.withAssignments(overlay)

	result := &ReconcileResult{}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if existing, ok := overlay[c.FeatureKey]; ok &&
			existing.TeamID == c.TeamID &&
			existing.StartSprint == c.StartSprint &&
			existing.EndSprint == c.EndSprint {
			result.AlreadyAssigned = append(result.AlreadyAssigned, c.FeatureKey)
			continue
		}

		res := Validate(working, c.Proposed, opts)
		if !res.Accepted {
			result.Rejected = append(result.Rejected, RejectedCandidate{
				FeatureKey: c.FeatureKey,
				Code:       res.Code,
				Message:    res.Message,
				Sprint:     res.Sprint,
				OverBy:     res.OverBy,
			})
			continue
		}

		points := c.AllocatedPoints
		if points == 0 {
			if f := state.Features[c.FeatureKey]; f != nil {
				points = f.Points
			}
		}
		overlay[c.FeatureKey] = &domain.Assignment{
			SessionID:       state.Session.ID,
			FeatureKey:      c.FeatureKey,
			TeamID:          c.TeamID,
			StartSprint:     c.StartSprint,
			EndSprint:       c.EndSprint,
			AllocatedPoints: points,
			Rationale:       c.Rationale,
		}
		result.Accepted = append(result.Accepted, AcceptedCandidate{Candidate: c, Warnings: res.Warnings})
	}
	return result, nil
}
