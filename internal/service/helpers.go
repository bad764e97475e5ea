package service

import (
	"context"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/planning"
	"github.com/piplan-io/piplan/internal/repository"
)

// loadPlanState assembles a consistent PlanState snapshot for a session
// from the given DBTX. Passing a transaction gives a stable read; the
// plain *sql.DB is fine for request-scoped reads.
func loadPlanState(ctx context.Context, dbtx db.DBTX, sessionID string) (*planning.PlanState, error) {
	sessions := repository.NewSQLiteSessionRepo(dbtx)
	sprints := repository.NewSQLiteSprintRepo(dbtx)
	teams := repository.NewSQLiteTeamRepo(dbtx)
	features := repository.NewSQLiteFeatureRepo(dbtx)
	assignments := repository.NewSQLiteAssignmentRepo(dbtx)

	session, err := sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sprintList, err := sprints.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	teamList, err := teams.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	featureList, err := features.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	assignmentList, err := assignments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return planning.NewPlanState(session, sprintList, teamList, featureList, assignmentList), nil
}
