// Package tracker ingests read-only feeds exported from an external
// issue tracker: boards with velocities and a feature backlog with
// dependencies. The engine never writes back to the tracker.
package tracker

import (
	"encoding/json"
	"fmt"
	"os"
)

// Feed is the top-level JSON structure of a tracker export.
type Feed struct {
	Teams    []TeamFeed    `json:"teams,omitempty"`
	Features []FeatureFeed `json:"features"`
}

// TeamFeed is one board in the feed.
type TeamFeed struct {
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Velocity int    `json:"velocity"`
}

// FeatureFeed is one backlog feature in the feed.
type FeatureFeed struct {
	Key              string           `json:"key"`
	ExternalKey      string           `json:"external_key,omitempty"`
	Title            string           `json:"title"`
	Points           int              `json:"points"`
	EstimatedSprints *int             `json:"estimated_sprints,omitempty"`
	Dependencies     []DependencyFeed `json:"dependencies,omitempty"`
}

// DependencyFeed is one typed dependency edge in the feed.
type DependencyFeed struct {
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// LoadFeed reads and parses a tracker feed file.
func LoadFeed(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing feed json: %w", err)
	}
	return &feed, nil
}
