package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/repository"
)

type versionService struct {
	versions    repository.PlanVersionRepo
	assignments repository.AssignmentRepo
	sessions    repository.SessionRepo
	uow         db.UnitOfWork
	locker      *SessionLocker
	observer    UseCaseObserver
}

// NewVersionService creates the plan snapshot/restore service.
func NewVersionService(
	versions repository.PlanVersionRepo,
	assignments repository.AssignmentRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	locker *SessionLocker,
	observers ...UseCaseObserver,
) VersionService {
	return &versionService{
		versions:    versions,
		assignments: assignments,
		sessions:    sessions,
		uow:         uow,
		locker:      locker,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *versionService) Snapshot(ctx context.Context, sessionID, label, comment string) (version *domain.PlanVersion, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "version.snapshot", started, err,
			map[string]any{"session_id": sessionID, "label": label})
	}()

	if label == "" {
		return nil, fmt.Errorf("version label is required")
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txVersions := repository.NewSQLitePlanVersionRepo(tx)

		session, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		live, err := txAssignments.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		version = &domain.PlanVersion{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Label:     label,
			Comment:   comment,
			CreatedAt: time.Now().UTC(),
		}
		// Deep copy: the snapshot must not alias live rows.
		for _, a := range live {
			version.Assignments = append(version.Assignments, *a)
		}
		if err := txVersions.Create(ctx, version); err != nil {
			return err
		}

		session.CurrentVersion = label
		session.UpdatedAt = time.Now().UTC()
		return txSessions.Update(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

func (s *versionService) List(ctx context.Context, sessionID string) ([]*domain.PlanVersion, error) {
	return s.versions.ListBySession(ctx, sessionID)
}

func (s *versionService) Restore(ctx context.Context, sessionID, versionID string) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "version.restore", started, err,
			map[string]any{"session_id": sessionID, "version_id": versionID})
	}()

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txVersions := repository.NewSQLitePlanVersionRepo(tx)

		version, err := txVersions.GetByID(ctx, versionID)
		if err != nil {
			return err
		}
		if version.SessionID != sessionID {
			return ErrVersionForeign
		}

		restored := make([]*domain.Assignment, 0, len(version.Assignments))
		for i := range version.Assignments {
			a := version.Assignments[i]
			restored = append(restored, &a)
		}
		// Only the assignment set is replaced; sprints, teams and
		// features are untouched by restore.
		if err := txAssignments.ReplaceAll(ctx, sessionID, restored); err != nil {
			return err
		}

		session, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		session.CurrentVersion = version.Label
		session.UpdatedAt = time.Now().UTC()
		return txSessions.Update(ctx, session)
	})
}
