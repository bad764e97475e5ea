package planning

import (
	"testing"

	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func featureMap(features ...*domain.Feature) map[string]*domain.Feature {
	m := make(map[string]*domain.Feature, len(features))
	for _, f := range features {
		m[f.Key] = f
	}
	return m
}

func TestBuildGraph_BlocksBecomesInverseBlockedBy(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A")
	a.Dependencies = []domain.Dependency{{TargetFeatureKey: "B", Kind: domain.DepBlocks}}
	b := testutil.NewTestFeature("s1", "B")

	g := BuildGraph(featureMap(a, b))

	assert.Equal(t, []string{"A"}, g.BlockersOf("B"))
	assert.Empty(t, g.BlockersOf("A"))
}

func TestBuildGraph_RelatesToIgnored(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A")
	a.Dependencies = []domain.Dependency{{TargetFeatureKey: "B", Kind: domain.DepRelatesTo}}

	g := BuildGraph(featureMap(a))
	assert.Empty(t, g.BlockersOf("A"))
	assert.False(t, g.HasCycle())
}

func TestHasCycle(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A", testutil.BlockedBy("B"))
	b := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("A"))
	c := testutil.NewTestFeature("s1", "C")

	assert.True(t, BuildGraph(featureMap(a, b, c)).HasCycle())

	// Diamond without a back edge is fine.
	d1 := testutil.NewTestFeature("s1", "A")
	d2 := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("A"))
	d3 := testutil.NewTestFeature("s1", "C", testutil.BlockedBy("A"))
	d4 := testutil.NewTestFeature("s1", "D", testutil.BlockedBy("B", "C"))
	assert.False(t, BuildGraph(featureMap(d1, d2, d3, d4)).HasCycle())
}

func TestEarliestStart_AfterLatestBlocker(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A")
	b := testutil.NewTestFeature("s1", "B")
	c := testutil.NewTestFeature("s1", "C", testutil.BlockedBy("A", "B"))
	g := BuildGraph(featureMap(a, b, c))

	bAssign := testutil.NewTestAssignment("s1", "B", "t1", 2, 5)
	bAssign.EndSprint = 3
	assignments := map[string]*domain.Assignment{
		"A": testutil.NewTestAssignment("s1", "A", "t1", 1, 5),
		"B": bAssign,
	}

	earliest, unassigned := g.EarliestStart("C", assignments)
	assert.Equal(t, 4, earliest, "may start the sprint after the latest blocker ends")
	assert.Empty(t, unassigned)
}

func TestEarliestStart_ReportsUnassignedBlockers(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A")
	b := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("A"))
	g := BuildGraph(featureMap(a, b))

	earliest, unassigned := g.EarliestStart("B", nil)
	assert.Equal(t, 1, earliest)
	assert.Equal(t, []string{"A"}, unassigned)
}

func TestEarliestStart_UnknownBlockerStaysUnready(t *testing.T) {
	// An edge to a key outside the session still blocks.
	b := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("GHOST"))
	g := BuildGraph(featureMap(b))

	_, unassigned := g.EarliestStart("B", nil)
	assert.Equal(t, []string{"GHOST"}, unassigned)
}

func TestReadyAt(t *testing.T) {
	a := testutil.NewTestFeature("s1", "A")
	b := testutil.NewTestFeature("s1", "B", testutil.BlockedBy("A"))
	c := testutil.NewTestFeature("s1", "C")
	g := BuildGraph(featureMap(a, b, c))

	assignments := map[string]*domain.Assignment{
		"A": testutil.NewTestAssignment("s1", "A", "t1", 1, 5),
	}

	ready := g.ReadyAt(assignments, 1)
	assert.True(t, ready["A"])
	assert.True(t, ready["C"])
	assert.False(t, ready["B"], "blocker ends in sprint 1, B is not ready until 2")

	ready = g.ReadyAt(assignments, 2)
	assert.True(t, ready["B"])
}
