package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/repository"
)

type teamService struct {
	teams    repository.TeamRepo
	sessions repository.SessionRepo
}

// NewTeamService creates the team-in-session service.
func NewTeamService(teams repository.TeamRepo, sessions repository.SessionRepo) TeamService {
	return &teamService{teams: teams, sessions: sessions}
}

func (s *teamService) Add(ctx context.Context, t *domain.Team) error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Velocity < 0 {
		return fmt.Errorf("team velocity must be >= 0, got %d", t.Velocity)
	}
	if _, err := s.sessions.GetByID(ctx, t.SessionID); err != nil {
		return err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.AdjustmentPct == 0 {
		t.AdjustmentPct = 100
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.teams.Create(ctx, t)
}

func (s *teamService) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *teamService) ListBySession(ctx context.Context, sessionID string) ([]*domain.Team, error) {
	return s.teams.ListBySession(ctx, sessionID)
}

func (s *teamService) Update(ctx context.Context, t *domain.Team) error {
	if t.Velocity < 0 {
		return fmt.Errorf("team velocity must be >= 0, got %d", t.Velocity)
	}
	t.UpdatedAt = time.Now().UTC()
	return s.teams.Update(ctx, t)
}

func (s *teamService) Remove(ctx context.Context, id string) error {
	return s.teams.Delete(ctx, id)
}
