package repository

import (
	"context"

	"github.com/piplan-io/piplan/internal/domain"
)

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}

type SprintRepo interface {
	Create(ctx context.Context, sp *domain.Sprint) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Sprint, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id string) error
}

type FeatureRepo interface {
	Create(ctx context.Context, f *domain.Feature) error
	GetByKey(ctx context.Context, sessionID, key string) (*domain.Feature, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Feature, error)
	Update(ctx context.Context, f *domain.Feature) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	// Upsert inserts or replaces the assignment for its feature key,
	// preserving the one-active-assignment-per-feature invariant.
	Upsert(ctx context.Context, a *domain.Assignment) error
	GetByFeatureKey(ctx context.Context, sessionID, featureKey string) (*domain.Assignment, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Assignment, error)
	DeleteByFeatureKey(ctx context.Context, sessionID, featureKey string) error
	// ReplaceAll atomically swaps the session's live assignment set,
	// used by version restore. Callers run it inside a transaction.
	ReplaceAll(ctx context.Context, sessionID string, assignments []*domain.Assignment) error
}

type PlanVersionRepo interface {
	Create(ctx context.Context, v *domain.PlanVersion) error
	GetByID(ctx context.Context, id string) (*domain.PlanVersion, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.PlanVersion, error)
}
