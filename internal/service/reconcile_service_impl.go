package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/planning"
	"github.com/piplan-io/piplan/internal/proposer"
	"github.com/piplan-io/piplan/internal/repository"
)

type reconcileService struct {
	reader   db.DBTX
	uow      db.UnitOfWork
	locker   *SessionLocker
	client   proposer.Client
	holidays map[string]bool
	observer UseCaseObserver
}

// NewReconcileService creates the AI plan reconciliation service.
// client may be nil when the proposer is disabled; PreviewCandidates
// and Apply still work against externally supplied candidate lists.
func NewReconcileService(reader db.DBTX, uow db.UnitOfWork, locker *SessionLocker, client proposer.Client, holidays map[string]bool, observers ...UseCaseObserver) ReconcileService {
	return &reconcileService{
		reader:   reader,
		uow:      uow,
		locker:   locker,
		client:   client,
		holidays: holidays,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reconcileService) Preview(ctx context.Context, sessionID string, opts contract.ProposeOptions) (result *PreviewResult, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "reconcile.preview", started, err, map[string]any{"session_id": sessionID})
	}()

	if s.client == nil {
		return nil, ErrProposerDisabled
	}

	// The proposer call runs before any lock is taken; only validation
	// against (possibly newer) state happens afterwards.
	state, err := loadPlanState(ctx, s.reader, sessionID)
	if err != nil {
		return nil, err
	}
	req := buildProposeRequest(state, s.holidays, opts)

	candidates, err := s.client.Propose(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ai proposer: %w", err)
	}

	reconcile, err := s.reconcile(ctx, sessionID, candidates, opts)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Candidates: candidates, Reconcile: reconcile}, nil
}

func (s *reconcileService) PreviewCandidates(ctx context.Context, sessionID string, candidates []contract.ProposedAssignment, opts contract.ProposeOptions) (*contract.ReconcileResult, error) {
	return s.reconcile(ctx, sessionID, candidates, opts)
}

func (s *reconcileService) reconcile(ctx context.Context, sessionID string, candidates []contract.ProposedAssignment, opts contract.ProposeOptions) (*contract.ReconcileResult, error) {
	state, err := loadPlanState(ctx, s.reader, sessionID)
	if err != nil {
		return nil, err
	}
	return planning.Reconcile(ctx, state, toCandidates(candidates), planning.Options{
		RespectDependencies: opts.RespectDependencies,
		// AI-proposed assignments are never allowed to overflow.
		AllowOverflow: false,
	})
}

func (s *reconcileService) Apply(ctx context.Context, sessionID string, candidates []contract.ProposedAssignment, opts contract.ProposeOptions) (result *contract.ReconcileResult, err error) {
	started := time.Now()
	defer func() {
		fields := map[string]any{"session_id": sessionID, "candidates": len(candidates)}
		if result != nil {
			fields["accepted"] = len(result.Accepted)
			fields["rejected"] = len(result.Rejected)
		}
		observe(ctx, s.observer, "reconcile.apply", started, err, fields)
	}()

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// Re-validate against fresh state: it may have drifted between
		// preview and apply.
		state, err := loadPlanState(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		res, err := planning.Reconcile(ctx, state, toCandidates(candidates), planning.Options{
			RespectDependencies: opts.RespectDependencies,
			AllowOverflow:       false,
		})
		if err != nil {
			return err
		}
		result = res

		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		now := time.Now().UTC()
		for _, accepted := range res.Accepted {
			points := accepted.AllocatedPoints
			if points == 0 {
				if f := state.Features[accepted.FeatureKey]; f != nil {
					points = f.Points
				}
			}
			assignment := &domain.Assignment{
				ID:               uuid.New().String(),
				SessionID:        sessionID,
				FeatureKey:       accepted.FeatureKey,
				TeamID:           accepted.TeamID,
				StartSprint:      accepted.StartSprint,
				EndSprint:        accepted.EndSprint,
				AllocatedPoints:  points,
				IsManualOverride: false,
				Rationale:        accepted.Rationale,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := txAssignments.Upsert(ctx, assignment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// toCandidates converts proposer output to reconciler input, preserving
// proposer order.
func toCandidates(proposals []contract.ProposedAssignment) []planning.Candidate {
	candidates := make([]planning.Candidate, 0, len(proposals))
	for _, p := range proposals {
		candidates = append(candidates, planning.Candidate{
			Proposed: planning.Proposed{
				FeatureKey:      p.FeatureKey,
				TeamID:          p.TeamID,
				StartSprint:     p.StartSprint,
				EndSprint:       p.EndSprint,
				AllocatedPoints: p.AllocatedPoints,
			},
			Rationale: p.Rationale,
		})
	}
	return candidates
}

// buildProposeRequest renders the plan state as the proposer's input
// contract: unassigned features only, with capacity and calendar context.
func buildProposeRequest(state *planning.PlanState, holidays map[string]bool, opts contract.ProposeOptions) contract.ProposeRequest {
	req := contract.ProposeRequest{Options: opts}

	var teams []*domain.Team
	for _, t := range state.Teams {
		teams = append(teams, t)
	}
	sortTeams(teams)
	for _, t := range teams {
		req.Teams = append(req.Teams, contract.ProposeTeam{
			ID:             t.ID,
			Name:           t.Name,
			CapacityPoints: t.CapacityPoints(1, false),
		})
	}

	for _, sp := range state.Sprints {
		req.Sprints = append(req.Sprints, contract.ProposeSprint{
			Num:         sp.Num,
			StartDate:   sp.StartDate.Format(planning.DateKey),
			EndDate:     sp.EndDate.Format(planning.DateKey),
			WorkingDays: planning.WorkingDays(sp.StartDate, sp.EndDate, holidays),
			IsIPSprint:  sp.IsIPSprint,
		})
	}

	graph := planning.BuildGraph(state.Features)
	var keys []string
	for key := range state.Features {
		if _, assigned := state.Assignments[key]; !assigned {
			keys = append(keys, key)
		}
	}
	sortStrings(keys)
	for _, key := range keys {
		f := state.Features[key]
		req.Features = append(req.Features, contract.ProposeFeature{
			Key:              f.Key,
			Title:            f.Title,
			Points:           f.Points,
			EstimatedSprints: f.EstimatedSprints,
			BlockedBy:        graph.BlockersOf(f.Key),
		})
	}

	return req
}
