package tracker

import (
	"fmt"

	"github.com/piplan-io/piplan/internal/domain"
)

// ValidateFeed checks the feed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateFeed(feed *Feed) []error {
	var errs []error

	boardIDs := make(map[string]bool)
	for i, t := range feed.Teams {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("teams[%d].name is required", i))
		}
		if t.Velocity < 0 {
			errs = append(errs, fmt.Errorf("teams[%d].velocity must be >= 0, got %d", i, t.Velocity))
		}
		if t.BoardID != "" {
			if boardIDs[t.BoardID] {
				errs = append(errs, fmt.Errorf("teams[%d].board_id %q duplicated", i, t.BoardID))
			}
			boardIDs[t.BoardID] = true
		}
	}

	keys := make(map[string]bool, len(feed.Features))
	for i, f := range feed.Features {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("features[%d].key is required", i))
			continue
		}
		if keys[f.Key] {
			errs = append(errs, fmt.Errorf("features[%d].key %q duplicated", i, f.Key))
		}
		keys[f.Key] = true
		if f.Title == "" {
			errs = append(errs, fmt.Errorf("feature %q: title is required", f.Key))
		}
		if f.Points < 0 {
			errs = append(errs, fmt.Errorf("feature %q: points must be >= 0, got %d", f.Key, f.Points))
		}
		if f.EstimatedSprints != nil && *f.EstimatedSprints < 1 {
			errs = append(errs, fmt.Errorf("feature %q: estimated_sprints must be >= 1, got %d", f.Key, *f.EstimatedSprints))
		}
	}

	// Dependency targets may point outside the feed (tracker exports are
	// often partial) but kinds must be known and self-edges are junk data.
	for _, f := range feed.Features {
		for j, d := range f.Dependencies {
			if d.Target == "" {
				errs = append(errs, fmt.Errorf("feature %q: dependencies[%d].target is required", f.Key, j))
			}
			if !domain.ValidDependencyKinds[d.Kind] {
				errs = append(errs, fmt.Errorf("feature %q: dependencies[%d].kind %q invalid", f.Key, j, d.Kind))
			}
			if d.Target == f.Key {
				errs = append(errs, fmt.Errorf("feature %q: depends on itself", f.Key))
			}
		}
	}

	return errs
}
