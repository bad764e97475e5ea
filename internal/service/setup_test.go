package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/repository"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	locker      *SessionLocker
	sessionRepo *repository.SQLiteSessionRepo
	sprintRepo  *repository.SQLiteSprintRepo
	teamRepo    *repository.SQLiteTeamRepo
	featureRepo *repository.SQLiteFeatureRepo
	assignRepo  *repository.SQLiteAssignmentRepo
	versionRepo *repository.SQLitePlanVersionRepo

	sessions  SessionService
	teams     TeamService
	features  FeatureService
	plan      PlanService
	versions  VersionService
	reconcile ReconcileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	locker := NewSessionLocker()

	env := &testEnv{
		db:          database,
		uow:         uow,
		locker:      locker,
		sessionRepo: repository.NewSQLiteSessionRepo(database),
		sprintRepo:  repository.NewSQLiteSprintRepo(database),
		teamRepo:    repository.NewSQLiteTeamRepo(database),
		featureRepo: repository.NewSQLiteFeatureRepo(database),
		assignRepo:  repository.NewSQLiteAssignmentRepo(database),
		versionRepo: repository.NewSQLitePlanVersionRepo(database),
	}
	env.sessions = NewSessionService(env.sessionRepo, env.sprintRepo, env.featureRepo, uow, domain.CycleWarn)
	env.teams = NewTeamService(env.teamRepo, env.sessionRepo)
	env.features = NewFeatureService(env.featureRepo, env.sessionRepo, uow)
	env.plan = NewPlanService(database, uow, locker, nil)
	env.versions = NewVersionService(env.versionRepo, env.assignRepo, env.sessionRepo, uow, locker)
	env.reconcile = NewReconcileService(database, uow, locker, nil, nil)
	return env
}

// newSession creates a planning session through the service so the
// sprint calendar exists.
func (env *testEnv) newSession(t *testing.T) *domain.Session {
	t.Helper()
	session, err := env.sessions.Create(context.Background(), CreateSessionRequest{
		Name:             "Q1",
		StartDate:        "2026-01-05",
		SprintCount:      5,
		SprintLengthDays: 14,
	})
	require.NoError(t, err)
	return session
}

func (env *testEnv) newTeam(t *testing.T, sessionID string, opts ...testutil.TeamOption) *domain.Team {
	t.Helper()
	team := testutil.NewTestTeam(sessionID, "Alpha", opts...)
	require.NoError(t, env.teamRepo.Create(context.Background(), team))
	return team
}

func (env *testEnv) newFeature(t *testing.T, sessionID, key string, opts ...testutil.FeatureOption) *domain.Feature {
	t.Helper()
	f := testutil.NewTestFeature(sessionID, key, opts...)
	require.NoError(t, env.featureRepo.Create(context.Background(), f))
	return f
}
