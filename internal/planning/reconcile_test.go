package planning

import (
	"context"
	"testing"

	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_AcceptsValidCandidates(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha", testutil.WithVelocity(20))
	f1 := testutil.NewTestFeature("s1", "F-1", testutil.WithPoints(8))
	f2 := testutil.NewTestFeature("s1", "F-2", testutil.WithPoints(10))
	state := newTestState(t, []*domain.Team{team}, []*domain.Feature{f1, f2}, nil)

	candidates := []Candidate{
		{Proposed: Proposed{FeatureKey: "F-1", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
		{Proposed: Proposed{FeatureKey: "F-2", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
	}

	result, err := Reconcile(context.Background(), state, candidates, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Accepted, 2)
	assert.Empty(t, result.Rejected)
	assert.Empty(t, state.Assignments, "reconcile never commits")
}

func TestReconcile_CumulativeCapacity(t *testing.T) {
	// Two 12-point candidates on a velocity-20 team in the same sprint:
	// the first is accepted, the second must see the first's load.
	team := testutil.NewTestTeam("s1", "Alpha", testutil.WithVelocity(20))
	f1 := testutil.NewTestFeature("s1", "F-1", testutil.WithPoints(12))
	f2 := testutil.NewTestFeature("s1", "F-2", testutil.WithPoints(12))
	state := newTestState(t, []*domain.Team{team}, []*domain.Feature{f1, f2}, nil)

	candidates := []Candidate{
		{Proposed: Proposed{FeatureKey: "F-1", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
		{Proposed: Proposed{FeatureKey: "F-2", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
	}

	result, err := Reconcile(context.Background(), state, candidates, Options{})
	require.NoError(t, err)
	require.Len(t, result.Accepted, 1)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "F-2", result.Rejected[0].FeatureKey)
	assert.Equal(t, RejectOverCapacity, result.Rejected[0].Code)
	assert.Equal(t, 4, result.Rejected[0].OverBy)
}

func TestReconcile_AcceptedBlockerUnblocksDependent(t *testing.T) {
	// Within one pass, a dependent may build on a blocker accepted
	// earlier in the same candidate list.
	team := testutil.NewTestTeam("s1", "Alpha", testutil.WithVelocity(50))
	a := testutil.NewTestFeature("s1", "A")
	b := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("A"))
	state := newTestState(t, []*domain.Team{team}, []*domain.Feature{a, b}, nil)

	candidates := []Candidate{
		{Proposed: Proposed{FeatureKey: "A", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
		{Proposed: Proposed{FeatureKey: "B", TeamID: team.ID, StartSprint: 2, EndSprint: 2}},
	}

	result, err := Reconcile(context.Background(), state, candidates, Options{RespectDependencies: true})
	require.NoError(t, err)
	assert.Len(t, result.Accepted, 2)
	assert.Empty(t, result.Rejected)
}

func TestReconcile_SkipsAlreadySatisfied(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha")
	f := testutil.NewTestFeature("s1", "F-1")
	state := newTestState(t,
		[]*domain.Team{team},
		[]*domain.Feature{f},
		[]*domain.Assignment{testutil.NewTestAssignment("s1", "F-1", team.ID, 2, 5)},
	)

	candidates := []Candidate{
		{Proposed: Proposed{FeatureKey: "F-1", TeamID: team.ID, StartSprint: 2, EndSprint: 2}},
	}

	result, err := Reconcile(context.Background(), state, candidates, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	assert.Equal(t, []string{"F-1"}, result.AlreadyAssigned)
}

func TestReconcile_Cancellation(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha")
	f := testutil.NewTestFeature("s1", "F-1")
	state := newTestState(t, []*domain.Team{team}, []*domain.Feature{f}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Reconcile(ctx, state, []Candidate{
		{Proposed: Proposed{FeatureKey: "F-1", TeamID: team.ID, StartSprint: 1, EndSprint: 1}},
	}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
