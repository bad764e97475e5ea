package tracker

import (
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/domain"
)

// Converted holds the domain entities produced from one feed.
type Converted struct {
	Teams    []*domain.Team
	Features []*domain.Feature
}

// Convert transforms a validated feed into domain objects scoped to the
// given session, ready for persistence. Call ValidateFeed first; Convert
// assumes the feed is valid.
func Convert(feed *Feed, sessionID string) *Converted {
	now := time.Now().UTC()
	out := &Converted{}

	for _, t := range feed.Teams {
		out.Teams = append(out.Teams, &domain.Team{
			ID:            uuid.New().String(),
			SessionID:     sessionID,
			Name:          t.Name,
			BoardID:       t.BoardID,
			Velocity:      t.Velocity,
			AdjustmentPct: 100,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	for _, f := range feed.Features {
		estimated := 1
		if f.EstimatedSprints != nil {
			estimated = *f.EstimatedSprints
		}
		feature := &domain.Feature{
			ID:               uuid.New().String(),
			SessionID:        sessionID,
			Key:              f.Key,
			ExternalKey:      f.ExternalKey,
			Title:            f.Title,
			Points:           f.Points,
			EstimatedSprints: estimated,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, d := range f.Dependencies {
			feature.Dependencies = append(feature.Dependencies, domain.Dependency{
				TargetFeatureKey: d.Target,
				Kind:             domain.DependencyKind(d.Kind),
			})
		}
		out.Features = append(out.Features, feature)
	}

	return out
}
