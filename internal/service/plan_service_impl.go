package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/planning"
	"github.com/piplan-io/piplan/internal/repository"
)

type planService struct {
	reader   db.DBTX
	uow      db.UnitOfWork
	locker   *SessionLocker
	holidays map[string]bool
	observer UseCaseObserver
}

// NewPlanService creates the assignment service. reader serves
// request-scoped reads; all writes go through the unit of work under
// the per-session lock. holidays feeds working-day derivation in the
// capacity view.
func NewPlanService(reader db.DBTX, uow db.UnitOfWork, locker *SessionLocker, holidays map[string]bool, observers ...UseCaseObserver) PlanService {
	return &planService{
		reader:   reader,
		uow:      uow,
		locker:   locker,
		holidays: holidays,
		observer: useCaseObserverOrNoop(observers),
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func (s *planService) Assign(ctx context.Context, req AssignRequest) (result *contract.ValidationResult, err error) {
	started := time.Now()
	defer func() {
		fields := map[string]any{"session_id": req.SessionID, "feature_key": req.Proposed.FeatureKey}
		if result != nil {
			fields["accepted"] = result.Accepted
		}
		observe(ctx, s.observer, "plan.assign", started, err, fields)
	}()

	unlock := s.locker.Lock(req.SessionID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		state, err := loadPlanState(ctx, tx, req.SessionID)
		if err != nil {
			return err
		}

		opts := planning.Options{
			RespectDependencies: req.RespectDependencies,
			AllowOverflow:       req.AllowOverflow && req.IsManualOverride,
		}
		res := planning.Validate(state, req.Proposed, opts)
		result = &res
		if !res.Accepted {
			// Rejection is a result, not a transaction failure.
			return nil
		}

		points := req.Proposed.AllocatedPoints
		if points == 0 {
			points = state.Features[req.Proposed.FeatureKey].Points
		}
		now := time.Now().UTC()
		assignment := &domain.Assignment{
			ID:               uuid.New().String(),
			SessionID:        req.SessionID,
			FeatureKey:       req.Proposed.FeatureKey,
			TeamID:           req.Proposed.TeamID,
			StartSprint:      req.Proposed.StartSprint,
			EndSprint:        req.Proposed.EndSprint,
			AllocatedPoints:  points,
			IsManualOverride: req.IsManualOverride,
			Rationale:        req.Rationale,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return repository.NewSQLiteAssignmentRepo(tx).Upsert(ctx, assignment)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *planService) Unassign(ctx context.Context, sessionID, featureKey string) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "plan.unassign", started, err,
			map[string]any{"session_id": sessionID, "feature_key": featureKey})
	}()

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	// Idempotent: deleting a missing assignment is a no-op success.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAssignmentRepo(tx).DeleteByFeatureKey(ctx, sessionID, featureKey)
	})
}

func (s *planService) CapacitySummary(ctx context.Context, sessionID, teamID string) ([]contract.CapacitySummaryRow, error) {
	state, err := loadPlanState(ctx, s.reader, sessionID)
	if err != nil {
		return nil, err
	}

	var teamIDs []string
	if teamID != "" {
		teamIDs = []string{teamID}
	} else {
		for id := range state.Teams {
			teamIDs = append(teamIDs, id)
		}
	}

	var rows []contract.CapacitySummaryRow
	for _, id := range teamIDs {
		team, ok := state.Teams[id]
		if !ok {
			continue
		}
		for _, sc := range planning.CapacitySummary(state, id) {
			sp := state.SprintByNum(sc.SprintNum)
			rows = append(rows, contract.CapacitySummaryRow{
				TeamID:          sc.TeamID,
				TeamName:        team.Name,
				SprintNum:       sc.SprintNum,
				WorkingDays:     planning.WorkingDays(sp.StartDate, sp.EndDate, s.holidays),
				CapacityPoints:  sc.CapacityPoints,
				AllocatedPoints: sc.AllocatedPoints,
				OverCapacity:    sc.OverCapacity,
				OverBy:          sc.OverBy,
			})
		}
	}
	return rows, nil
}

func (s *planService) Kanban(ctx context.Context, sessionID string) (*contract.KanbanBoard, error) {
	state, err := loadPlanState(ctx, s.reader, sessionID)
	if err != nil {
		return nil, err
	}

	board := &contract.KanbanBoard{SessionID: sessionID}

	// Lanes in stable team order.
	var teams []*domain.Team
	for _, t := range state.Teams {
		teams = append(teams, t)
	}
	sortTeams(teams)

	for _, team := range teams {
		lane := contract.KanbanLane{TeamID: team.ID, TeamName: team.Name}
		for _, sp := range state.Sprints {
			col := contract.KanbanColumn{SprintNum: sp.Num}
			for _, a := range state.Assignments {
				if a.TeamID != team.ID || a.StartSprint != sp.Num {
					continue
				}
				feature := state.Features[a.FeatureKey]
				title := ""
				if feature != nil {
					title = feature.Title
				}
				col.Cards = append(col.Cards, contract.KanbanCard{
					FeatureKey:       a.FeatureKey,
					Title:            title,
					Points:           a.AllocatedPoints,
					StartSprint:      a.StartSprint,
					EndSprint:        a.EndSprint,
					IsManualOverride: a.IsManualOverride,
				})
			}
			sortCards(col.Cards)
			lane.Columns = append(lane.Columns, col)
		}
		board.Lanes = append(board.Lanes, lane)
	}

	for key, f := range state.Features {
		if _, assigned := state.Assignments[key]; assigned {
			continue
		}
		board.Backlog = append(board.Backlog, contract.KanbanCard{
			FeatureKey: f.Key,
			Title:      f.Title,
			Points:     f.Points,
		})
	}
	sortCards(board.Backlog)

	return board, nil
}
