package planning

import (
	"testing"
	"time"

	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDays_SkipsWeekends(t *testing.T) {
	// Mon 2026-01-05 .. Sun 2026-01-18: two full weeks.
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, WorkingDays(start, end, nil))
}

func TestWorkingDays_SkipsHolidays(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

	holidays := map[string]bool{
		"2026-01-06": true, // Tuesday
		"2026-01-10": true, // Saturday, already skipped
	}
	assert.Equal(t, 9, WorkingDays(start, end, holidays))
}

func TestWorkingDays_InvertedRange(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WorkingDays(start, start.AddDate(0, 0, -1), nil))
}

func TestWorkingDays_SingleDay(t *testing.T) {
	mon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sat := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, WorkingDays(mon, mon, nil))
	assert.Equal(t, 0, WorkingDays(sat, sat, nil))
}

// newTestState builds a PlanState over the default 5-sprint calendar.
func newTestState(t *testing.T, teams []*domain.Team, features []*domain.Feature, assignments []*domain.Assignment) *PlanState {
	t.Helper()
	session := testutil.NewTestSession("Q1")
	var sprints []*domain.Sprint
	for num := 1; num <= session.TotalSprints(); num++ {
		start := session.StartDate.AddDate(0, 0, (num-1)*session.SprintLengthDays)
		sp := testutil.NewTestSprint(session.ID, num, start, session.SprintLengthDays)
		sp.IsIPSprint = session.IncludeIPSprint && num == session.TotalSprints()
		sprints = append(sprints, sp)
	}
	return NewPlanState(session, sprints, teams, features, assignments)
}

func TestCapacitySummary_SumsSpanningAssignments(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha", testutil.WithVelocity(20))
	f1 := testutil.NewTestFeature("s1", "F-1", testutil.WithPoints(8))
	f2 := testutil.NewTestFeature("s1", "F-2", testutil.WithPoints(12))

	multi := testutil.NewTestAssignment("s1", "F-2", team.ID, 1, 12)
	multi.EndSprint = 3

	state := newTestState(t,
		[]*domain.Team{team},
		[]*domain.Feature{f1, f2},
		[]*domain.Assignment{
			testutil.NewTestAssignment("s1", "F-1", team.ID, 2, 8),
			multi,
		},
	)

	rows := CapacitySummary(state, team.ID)
	require.Len(t, rows, 5)

	// F-2 loads sprints 1..3 with its full 12 points each; F-1 adds 8 in sprint 2.
	assert.Equal(t, 12, rows[0].AllocatedPoints)
	assert.Equal(t, 20, rows[1].AllocatedPoints)
	assert.Equal(t, 12, rows[2].AllocatedPoints)
	assert.Equal(t, 0, rows[3].AllocatedPoints)

	for _, row := range rows {
		assert.Equal(t, 20, row.CapacityPoints)
		assert.False(t, row.OverCapacity)
	}
}

func TestCapacitySummary_FlagsOverCapacity(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha", testutil.WithVelocity(10))
	state := newTestState(t,
		[]*domain.Team{team},
		nil,
		[]*domain.Assignment{testutil.NewTestAssignment("s1", "F-1", team.ID, 1, 14)},
	)

	rows := CapacitySummary(state, team.ID)
	require.NotEmpty(t, rows)
	assert.True(t, rows[0].OverCapacity)
	assert.Equal(t, 4, rows[0].OverBy)
}

func TestCapacitySummary_UnknownTeam(t *testing.T) {
	state := newTestState(t, nil, nil, nil)
	assert.Nil(t, CapacitySummary(state, "missing"))
}

func TestTeamCapacityPoints(t *testing.T) {
	team := testutil.NewTestTeam("s1", "Alpha",
		testutil.WithVelocity(20),
		testutil.WithAdjustment(85),
		testutil.WithSprintOverride(3, 5),
	)

	assert.Equal(t, 17, team.CapacityPoints(1, false), "velocity scaled by adjustment, rounded")
	assert.Equal(t, 5, team.CapacityPoints(3, false), "explicit override wins")
	assert.Equal(t, 0, team.CapacityPoints(6, true), "IP sprint has no delivery capacity")
}
