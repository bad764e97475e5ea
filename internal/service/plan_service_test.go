package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/repository"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignReq(sessionID, featureKey, teamID string, sprint int) AssignRequest {
	return AssignRequest{
		SessionID: sessionID,
		Proposed: contract.Proposed{
			FeatureKey:  featureKey,
			TeamID:      teamID,
			StartSprint: sprint,
			EndSprint:   sprint,
		},
		IsManualOverride:    true,
		RespectDependencies: true,
	}
}

func TestPlanAssign_PersistsAcceptedPlacement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))

	result, err := env.plan.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 1))
	require.NoError(t, err)
	require.True(t, result.Accepted)

	a, err := env.assignRepo.GetByFeatureKey(ctx, session.ID, "F-1")
	require.NoError(t, err)
	assert.Equal(t, team.ID, a.TeamID)
	assert.Equal(t, 8, a.AllocatedPoints, "defaults to feature points")
	assert.True(t, a.IsManualOverride)
}

func TestPlanAssign_RejectionPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))
	env.newFeature(t, session.ID, "F-2", testutil.WithPoints(15))

	_, err := env.plan.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 1))
	require.NoError(t, err)

	result, err := env.plan.Assign(ctx, assignReq(session.ID, "F-2", team.ID, 1))
	require.NoError(t, err, "rejection is a result, not an error")
	require.False(t, result.Accepted)
	assert.Equal(t, contract.RejectOverCapacity, result.Code)
	assert.Equal(t, 3, result.OverBy)

	_, err = env.assignRepo.GetByFeatureKey(ctx, session.ID, "F-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanUnassign_RestoresCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))
	env.newFeature(t, session.ID, "F-2", testutil.WithPoints(15))

	_, err := env.plan.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 1))
	require.NoError(t, err)

	result, err := env.plan.Assign(ctx, assignReq(session.ID, "F-2", team.ID, 1))
	require.NoError(t, err)
	require.False(t, result.Accepted)

	require.NoError(t, env.plan.Unassign(ctx, session.ID, "F-1"))

	result, err = env.plan.Assign(ctx, assignReq(session.ID, "F-2", team.ID, 1))
	require.NoError(t, err)
	assert.True(t, result.Accepted, "freed capacity accepts the placement")
}

func TestPlanUnassign_MissingIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	assert.NoError(t, env.plan.Unassign(context.Background(), session.ID, "never-assigned"))
}

func TestPlanAssign_OverflowOptIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(10))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(14))

	req := assignReq(session.ID, "F-1", team.ID, 1)
	req.AllowOverflow = true

	result, err := env.plan.Assign(ctx, req)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, contract.WarnOverflowAllowed, result.Warnings[0].Code)

	// Overflow without the manual flag is ignored.
	env.newFeature(t, session.ID, "F-2", testutil.WithPoints(14))
	req = assignReq(session.ID, "F-2", team.ID, 2)
	req.AllowOverflow = true
	req.IsManualOverride = false

	result, err = env.plan.Assign(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.Accepted)
}

func TestPlanAssign_RollbackOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 1, Err: boom}
	svc := NewPlanService(env.db, failing, env.locker, nil)

	_, err := svc.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 1))
	require.ErrorIs(t, err, boom)

	_, err = env.assignRepo.GetByFeatureKey(ctx, session.ID, "F-1")
	assert.ErrorIs(t, err, repository.ErrNotFound, "failed write leaves no assignment")
}

func TestPlanCapacitySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))

	_, err := env.plan.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 2))
	require.NoError(t, err)

	rows, err := env.plan.CapacitySummary(ctx, session.ID, team.ID)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Alpha", rows[0].TeamName)
	assert.Equal(t, 0, rows[0].AllocatedPoints)
	assert.Equal(t, 8, rows[1].AllocatedPoints)
	assert.Equal(t, 10, rows[0].WorkingDays, "two weeks minus weekends")

	// All-teams view covers every team.
	other := testutil.NewTestTeam(session.ID, "Bravo")
	require.NoError(t, env.teamRepo.Create(ctx, other))
	rows, err = env.plan.CapacitySummary(ctx, session.ID, "")
	require.NoError(t, err)
	assert.Len(t, rows, 10)
}

func TestPlanKanban(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)
	team := env.newTeam(t, session.ID, testutil.WithVelocity(20))
	env.newFeature(t, session.ID, "F-1", testutil.WithPoints(8))
	env.newFeature(t, session.ID, "F-2", testutil.WithPoints(5))

	_, err := env.plan.Assign(ctx, assignReq(session.ID, "F-1", team.ID, 2))
	require.NoError(t, err)

	board, err := env.plan.Kanban(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, board.Lanes, 1)
	require.Len(t, board.Lanes[0].Columns, 5)

	assert.Empty(t, board.Lanes[0].Columns[0].Cards)
	require.Len(t, board.Lanes[0].Columns[1].Cards, 1)
	assert.Equal(t, "F-1", board.Lanes[0].Columns[1].Cards[0].FeatureKey)

	require.Len(t, board.Backlog, 1)
	assert.Equal(t, "F-2", board.Backlog[0].FeatureKey)
}

func TestPlanAssign_ConcurrentSessionsProceed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s1 := env.newSession(t)
	s2, err := env.sessions.Create(ctx, CreateSessionRequest{
		Name: "Q2", StartDate: "2026-04-06", SprintCount: 5, SprintLengthDays: 14,
	})
	require.NoError(t, err)

	t1 := env.newTeam(t, s1.ID, testutil.WithVelocity(20))
	t2 := testutil.NewTestTeam(s2.ID, "Bravo", testutil.WithVelocity(20))
	require.NoError(t, env.teamRepo.Create(ctx, t2))
	env.newFeature(t, s1.ID, "F-1")
	f2 := testutil.NewTestFeature(s2.ID, "F-1")
	require.NoError(t, env.featureRepo.Create(ctx, f2))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.plan.Assign(ctx, assignReq(s1.ID, "F-1", t1.ID, 1))
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.plan.Assign(ctx, assignReq(s2.ID, "F-1", t2.ID, 1))
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	a1, err := env.assignRepo.GetByFeatureKey(ctx, s1.ID, "F-1")
	require.NoError(t, err)
	a2, err := env.assignRepo.GetByFeatureKey(ctx, s2.ID, "F-1")
	require.NoError(t, err)
	assert.NotEqual(t, a1.SessionID, a2.SessionID)
}
