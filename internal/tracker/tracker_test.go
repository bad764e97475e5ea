package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piplan-io/piplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeedJSON = `{
  "teams": [
    {"board_id": "ALPHA", "name": "Alpha", "velocity": 20}
  ],
  "features": [
    {"key": "F-1", "external_key": "PROJ-101", "title": "Login flow", "points": 8},
    {
      "key": "F-2", "title": "Search", "points": 13, "estimated_sprints": 2,
      "dependencies": [{"target": "F-1", "kind": "blocked_by"}]
    }
  ]
}`

func TestLoadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleFeedJSON), 0644))

	feed, err := LoadFeed(path)
	require.NoError(t, err)
	require.Len(t, feed.Teams, 1)
	require.Len(t, feed.Features, 2)
	assert.Equal(t, "ALPHA", feed.Teams[0].BoardID)
	require.NotNil(t, feed.Features[1].EstimatedSprints)
	assert.Equal(t, 2, *feed.Features[1].EstimatedSprints)
}

func TestLoadFeed_Errors(t *testing.T) {
	_, err := LoadFeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err = LoadFeed(path)
	assert.Error(t, err)
}

func TestValidateFeed(t *testing.T) {
	one := 1
	zero := 0
	cases := []struct {
		name string
		feed Feed
		errs int
	}{
		{"valid", Feed{
			Teams:    []TeamFeed{{BoardID: "A", Name: "Alpha", Velocity: 20}},
			Features: []FeatureFeed{{Key: "F-1", Title: "T", Points: 3, EstimatedSprints: &one}},
		}, 0},
		{"missing key", Feed{Features: []FeatureFeed{{Title: "T"}}}, 1},
		{"duplicate key", Feed{Features: []FeatureFeed{
			{Key: "F-1", Title: "A"}, {Key: "F-1", Title: "B"},
		}}, 1},
		{"missing title", Feed{Features: []FeatureFeed{{Key: "F-1"}}}, 1},
		{"negative points", Feed{Features: []FeatureFeed{{Key: "F-1", Title: "T", Points: -1}}}, 1},
		{"zero estimated sprints", Feed{Features: []FeatureFeed{
			{Key: "F-1", Title: "T", EstimatedSprints: &zero},
		}}, 1},
		{"bad dependency kind", Feed{Features: []FeatureFeed{
			{Key: "F-1", Title: "T", Dependencies: []DependencyFeed{{Target: "F-2", Kind: "requires"}}},
		}}, 1},
		{"self dependency", Feed{Features: []FeatureFeed{
			{Key: "F-1", Title: "T", Dependencies: []DependencyFeed{{Target: "F-1", Kind: "blocked_by"}}},
		}}, 1},
		{"duplicate board", Feed{Teams: []TeamFeed{
			{BoardID: "A", Name: "Alpha"}, {BoardID: "A", Name: "Bravo"},
		}}, 1},
		{"nameless team", Feed{Teams: []TeamFeed{{BoardID: "A"}}}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateFeed(&tc.feed)
			assert.Len(t, errs, tc.errs)
		})
	}
}

func TestValidateFeed_TargetOutsideFeedAllowed(t *testing.T) {
	feed := Feed{Features: []FeatureFeed{
		{Key: "F-1", Title: "T", Dependencies: []DependencyFeed{{Target: "EXTERNAL-9", Kind: "blocked_by"}}},
	}}
	assert.Empty(t, ValidateFeed(&feed))
}

func TestConvert(t *testing.T) {
	two := 2
	feed := &Feed{
		Teams: []TeamFeed{{BoardID: "A", Name: "Alpha", Velocity: 20}},
		Features: []FeatureFeed{
			{Key: "F-1", Title: "One", Points: 8},
			{Key: "F-2", Title: "Two", Points: 13, EstimatedSprints: &two,
				Dependencies: []DependencyFeed{{Target: "F-1", Kind: "blocks"}}},
		},
	}

	out := Convert(feed, "s1")
	require.Len(t, out.Teams, 1)
	assert.Equal(t, "s1", out.Teams[0].SessionID)
	assert.Equal(t, 100, out.Teams[0].AdjustmentPct)

	require.Len(t, out.Features, 2)
	assert.Equal(t, 1, out.Features[0].EstimatedSprints, "defaults to one sprint")
	assert.Equal(t, 2, out.Features[1].EstimatedSprints)
	require.Len(t, out.Features[1].Dependencies, 1)
	assert.Equal(t, domain.DepBlocks, out.Features[1].Dependencies[0].Kind)
}
