package service

import (
	"context"
	"testing"
	"time"

	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreate_GeneratesCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.sessions.Create(ctx, CreateSessionRequest{
		Name:             "Q1",
		StartDate:        "2026-01-05",
		SprintCount:      3,
		SprintLengthDays: 14,
		IncludeIPSprint:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionDraft, session.Status)

	sprints, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, sprints, 4, "3 delivery sprints plus IP")

	// Contiguous blocks: each sprint starts the day after the previous ends.
	for i, sp := range sprints {
		assert.Equal(t, i+1, sp.Num)
		if i > 0 {
			assert.True(t, sp.StartDate.Equal(sprints[i-1].EndDate.AddDate(0, 0, 1)),
				"sprint %d starts the day after sprint %d ends", sp.Num, sprints[i-1].Num)
		}
	}
	assert.True(t, sprints[3].IsIPSprint)
	assert.False(t, sprints[0].IsIPSprint)
	expectedStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, sprints[0].StartDate.Equal(expectedStart))
}

func TestSessionCreate_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sessions.Create(ctx, CreateSessionRequest{
		Name: "Q1", StartDate: "not-a-date", SprintCount: 3, SprintLengthDays: 14,
	})
	assert.Error(t, err)

	_, err = env.sessions.Create(ctx, CreateSessionRequest{
		Name: "", StartDate: "2026-01-05", SprintCount: 3, SprintLengthDays: 14,
	})
	assert.Error(t, err)

	_, err = env.sessions.Create(ctx, CreateSessionRequest{
		Name: "Q1", StartDate: "2026-01-05", SprintCount: 0, SprintLengthDays: 14,
	})
	assert.Error(t, err)
}

func TestSessionUpdate_RegeneratesCalendarOnShapeChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)

	count := 3
	length := 7
	updated, err := env.sessions.Update(ctx, session.ID, SessionUpdate{
		SprintCount:      &count,
		SprintLengthDays: &length,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.SprintCount)

	sprints, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, sprints, 3)
	assert.True(t, sprints[0].EndDate.Equal(sprints[0].StartDate.AddDate(0, 0, 6)))
}

func TestSessionUpdate_NameOnlyKeepsCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)

	before, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)

	name := "Q1 revised"
	_, err = env.sessions.Update(ctx, session.ID, SessionUpdate{Name: &name})
	require.NoError(t, err)

	after, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID, "sprint rows untouched")
	}
}

func TestSessionUpdate_RejectedPastPlanning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)

	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionPlanning))
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionActive))

	name := "too late"
	_, err := env.sessions.Update(ctx, session.ID, SessionUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrSessionNotEditable)
}

func TestSessionTransition_StateMachine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)

	// draft -> active skips planning and is refused.
	err := env.sessions.Transition(ctx, session.ID, domain.SessionActive)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionPlanning))
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionActive))
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionLocked))
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionActive))
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionCompleted))

	// completed is terminal.
	err = env.sessions.Transition(ctx, session.ID, domain.SessionDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSessionTransition_CycleBlockPolicy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	blocking := NewSessionService(env.sessionRepo, env.sprintRepo, env.featureRepo, env.uow, domain.CycleBlockActivation)

	session := env.newSession(t)
	env.newFeature(t, session.ID, "A", testutil.BlockedBy("B"))
	b := testutil.NewTestFeature(session.ID, "B", testutil.BlockedBy("A"))
	require.NoError(t, env.featureRepo.Create(ctx, b))

	require.NoError(t, blocking.Transition(ctx, session.ID, domain.SessionPlanning))
	err := blocking.Transition(ctx, session.ID, domain.SessionActive)
	assert.ErrorIs(t, err, ErrCyclicBacklog)

	// The default warn policy lets the same backlog activate.
	require.NoError(t, env.sessions.Transition(ctx, session.ID, domain.SessionActive))
}

func TestSessionRegenerateCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.newSession(t)

	before, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)

	require.NoError(t, env.sessions.RegenerateCalendar(ctx, session.ID))

	after, err := env.sessions.Sprints(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.NotEqual(t, before[i].ID, after[i].ID, "all sprint rows rebuilt together")
		assert.True(t, before[i].StartDate.Equal(after[i].StartDate))
	}
}
