package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/planning"
	"github.com/piplan-io/piplan/internal/repository"
)

type sessionService struct {
	sessions    repository.SessionRepo
	sprints     repository.SprintRepo
	features    repository.FeatureRepo
	uow         db.UnitOfWork
	cyclePolicy domain.CyclePolicy
}

// NewSessionService creates the session lifecycle service. cyclePolicy
// decides whether a dependency cycle in the backlog blocks the
// planning -> active transition or merely warns.
func NewSessionService(
	sessions repository.SessionRepo,
	sprints repository.SprintRepo,
	features repository.FeatureRepo,
	uow db.UnitOfWork,
	cyclePolicy domain.CyclePolicy,
) SessionService {
	if cyclePolicy == "" {
		cyclePolicy = domain.CycleWarn
	}
	return &sessionService{
		sessions:    sessions,
		sprints:     sprints,
		features:    features,
		uow:         uow,
		cyclePolicy: cyclePolicy,
	}
}

func (s *sessionService) Create(ctx context.Context, req CreateSessionRequest) (*domain.Session, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start date %q: %w", req.StartDate, err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Status:           domain.SessionDraft,
		StartDate:        startDate,
		SprintCount:      req.SprintCount,
		SprintLengthDays: req.SprintLengthDays,
		IncludeIPSprint:  req.IncludeIPSprint,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		if err := txSessions.Create(ctx, session); err != nil {
			return err
		}
		return generateCalendar(ctx, txSprints, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// generateCalendar writes the session's sprint rows: contiguous blocks
// of SprintLengthDays calendar days, plus a trailing IP sprint when
// configured. Working-day counts are derived at read time, never stored.
func generateCalendar(ctx context.Context, sprints repository.SprintRepo, session *domain.Session) error {
	now := time.Now().UTC()
	total := session.TotalSprints()
	for num := 1; num <= total; num++ {
		start := session.StartDate.AddDate(0, 0, (num-1)*session.SprintLengthDays)
		end := start.AddDate(0, 0, session.SprintLengthDays-1)
		sp := &domain.Sprint{
			ID:         uuid.New().String(),
			SessionID:  session.ID,
			Num:        num,
			StartDate:  start,
			EndDate:    end,
			IsIPSprint: session.IncludeIPSprint && num == total,
			CreatedAt:  now,
		}
		if err := sprints.Create(ctx, sp); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *sessionService) Sprints(ctx context.Context, id string) ([]*domain.Sprint, error) {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.sprints.ListBySession(ctx, id)
}

func (s *sessionService) Update(ctx context.Context, id string, upd SessionUpdate) (*domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Editable() {
		return nil, fmt.Errorf("%w: status %s", ErrSessionNotEditable, session.Status)
	}

	calendarChanged := false
	if upd.Name != nil {
		session.Name = *upd.Name
	}
	if upd.StartDate != nil {
		d, err := time.Parse("2006-01-02", *upd.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start date %q: %w", *upd.StartDate, err)
		}
		session.StartDate = d
		calendarChanged = true
	}
	if upd.SprintCount != nil {
		session.SprintCount = *upd.SprintCount
		calendarChanged = true
	}
	if upd.SprintLengthDays != nil {
		session.SprintLengthDays = *upd.SprintLengthDays
		calendarChanged = true
	}
	if upd.IncludeIPSprint != nil {
		session.IncludeIPSprint = *upd.IncludeIPSprint
		calendarChanged = true
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txSprints := repository.NewSQLiteSprintRepo(tx)

		if err := txSessions.Update(ctx, session); err != nil {
			return err
		}
		if !calendarChanged {
			return nil
		}
		if err := txSprints.DeleteBySession(ctx, session.ID); err != nil {
			return err
		}
		return generateCalendar(ctx, txSprints, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Transition(ctx context.Context, id string, to domain.SessionStatus) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if to == domain.SessionActive && s.cyclePolicy == domain.CycleBlockActivation {
		features, err := s.features.ListBySession(ctx, id)
		if err != nil {
			return err
		}
		byKey := make(map[string]*domain.Feature, len(features))
		for _, f := range features {
			byKey[f.Key] = f
		}
		if planning.BuildGraph(byKey).HasCycle() {
			return ErrCyclicBacklog
		}
	}

	if err := session.Transition(to); err != nil {
		return err
	}
	session.UpdatedAt = time.Now().UTC()
	return s.sessions.Update(ctx, session)
}

func (s *sessionService) RegenerateCalendar(ctx context.Context, id string) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		if err := txSprints.DeleteBySession(ctx, session.ID); err != nil {
			return err
		}
		return generateCalendar(ctx, txSprints, session)
	})
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	// FK cascade removes sprints, teams, features, assignments and
	// versions owned by the session.
	return s.sessions.Delete(ctx, id)
}
