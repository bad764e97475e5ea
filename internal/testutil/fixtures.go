package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/piplan-io/piplan/internal/domain"
)

// Session options
type SessionOption func(*domain.Session)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.Session) {
		sess.Status = s
	}
}

func WithSprintCount(n int) SessionOption {
	return func(sess *domain.Session) {
		sess.SprintCount = n
	}
}

func WithIPSprint() SessionOption {
	return func(sess *domain.Session) {
		sess.IncludeIPSprint = true
	}
}

func WithStartDate(d time.Time) SessionOption {
	return func(sess *domain.Session) {
		sess.StartDate = d
	}
}

// NewTestSession builds a draft session with a 5-sprint, 14-day calendar
// starting on a Monday.
func NewTestSession(name string, opts ...SessionOption) *domain.Session {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:               uuid.New().String(),
		Name:             name,
		Status:           domain.SessionDraft,
		StartDate:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		SprintCount:      5,
		SprintLengthDays: 14,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestSprint builds one sprint of a session's calendar.
func NewTestSprint(sessionID string, num int, start time.Time, lengthDays int) *domain.Sprint {
	return &domain.Sprint{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Num:       num,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, lengthDays-1),
		CreatedAt: time.Now().UTC(),
	}
}

// Team options
type TeamOption func(*domain.Team)

func WithVelocity(v int) TeamOption {
	return func(t *domain.Team) {
		t.Velocity = v
	}
}

func WithAdjustment(pct int) TeamOption {
	return func(t *domain.Team) {
		t.AdjustmentPct = pct
	}
}

func WithSprintOverride(num, points int) TeamOption {
	return func(t *domain.Team) {
		if t.SprintOverrides == nil {
			t.SprintOverrides = make(map[int]int)
		}
		t.SprintOverrides[num] = points
	}
}

func NewTestTeam(sessionID, name string, opts ...TeamOption) *domain.Team {
	now := time.Now().UTC()
	t := &domain.Team{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		Name:          name,
		Velocity:      20,
		AdjustmentPct: 100,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Feature options
type FeatureOption func(*domain.Feature)

func WithPoints(p int) FeatureOption {
	return func(f *domain.Feature) {
		f.Points = p
	}
}

func WithEstimatedSprints(n int) FeatureOption {
	return func(f *domain.Feature) {
		f.EstimatedSprints = n
	}
}

func BlockedBy(keys ...string) FeatureOption {
	return func(f *domain.Feature) {
		for _, key := range keys {
			f.Dependencies = append(f.Dependencies, domain.Dependency{
				TargetFeatureKey: key,
				Kind:             domain.DepBlockedBy,
			})
		}
	}
}

func NewTestFeature(sessionID, key string, opts ...FeatureOption) *domain.Feature {
	now := time.Now().UTC()
	f := &domain.Feature{
		ID:               uuid.New().String(),
		SessionID:        sessionID,
		Key:              key,
		Title:            "Feature " + key,
		Points:           5,
		EstimatedSprints: 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewTestAssignment builds an assignment of a feature onto a team for a
// single sprint.
func NewTestAssignment(sessionID, featureKey, teamID string, sprint, points int) *domain.Assignment {
	now := time.Now().UTC()
	return &domain.Assignment{
		ID:              uuid.New().String(),
		SessionID:       sessionID,
		FeatureKey:      featureKey,
		TeamID:          teamID,
		StartSprint:     sprint,
		EndSprint:       sprint,
		AllocatedPoints: points,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
