package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/repository"
	"github.com/piplan-io/piplan/internal/tracker"
)

type featureService struct {
	features repository.FeatureRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
}

// NewFeatureService creates the backlog service.
func NewFeatureService(features repository.FeatureRepo, sessions repository.SessionRepo, uow db.UnitOfWork) FeatureService {
	return &featureService{features: features, sessions: sessions, uow: uow}
}

func (s *featureService) ImportFeed(ctx context.Context, sessionID string, feed *tracker.Feed) (*ImportResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Editable() {
		return nil, fmt.Errorf("%w: status %s", ErrSessionNotEditable, session.Status)
	}

	if errs := tracker.ValidateFeed(feed); len(errs) > 0 {
		return nil, fmt.Errorf("invalid feed: %w", errors.Join(errs...))
	}
	converted := tracker.Convert(feed, sessionID)

	result := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTeams := repository.NewSQLiteTeamRepo(tx)
		txFeatures := repository.NewSQLiteFeatureRepo(tx)

		existingTeams, err := txTeams.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		byBoard := make(map[string]*domain.Team, len(existingTeams))
		for _, t := range existingTeams {
			if t.BoardID != "" {
				byBoard[t.BoardID] = t
			}
		}
		for _, t := range converted.Teams {
			if existing, ok := byBoard[t.BoardID]; ok {
				existing.Name = t.Name
				existing.Velocity = t.Velocity
				existing.UpdatedAt = time.Now().UTC()
				if err := txTeams.Update(ctx, existing); err != nil {
					return err
				}
				continue
			}
			if err := txTeams.Create(ctx, t); err != nil {
				return err
			}
			result.TeamCount++
		}

		for _, f := range converted.Features {
			result.DependencyCount += len(f.Dependencies)
			existing, err := txFeatures.GetByKey(ctx, sessionID, f.Key)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				if err := txFeatures.Create(ctx, f); err != nil {
					return err
				}
				result.FeatureCount++
				continue
			}
			existing.ExternalKey = f.ExternalKey
			existing.Title = f.Title
			existing.Points = f.Points
			existing.EstimatedSprints = f.EstimatedSprints
			existing.Dependencies = f.Dependencies
			existing.UpdatedAt = time.Now().UTC()
			if err := txFeatures.Update(ctx, existing); err != nil {
				return err
			}
			result.UpdatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *featureService) GetByKey(ctx context.Context, sessionID, key string) (*domain.Feature, error) {
	return s.features.GetByKey(ctx, sessionID, key)
}

func (s *featureService) ListBySession(ctx context.Context, sessionID string) ([]*domain.Feature, error) {
	return s.features.ListBySession(ctx, sessionID)
}

func (s *featureService) Remove(ctx context.Context, sessionID, key string) error {
	f, err := s.features.GetByKey(ctx, sessionID, key)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txFeatures := repository.NewSQLiteFeatureRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		// A removed feature takes its assignment with it.
		if err := txAssignments.DeleteByFeatureKey(ctx, sessionID, key); err != nil {
			return err
		}
		return txFeatures.Delete(ctx, f.ID)
	})
}
