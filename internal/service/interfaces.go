package service

import (
	"context"

	"github.com/piplan-io/piplan/internal/contract"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/tracker"
)

// CreateSessionRequest carries the inputs for a new planning session.
// The sprint calendar is generated at creation time from these fields
// plus the configured holiday calendar.
type CreateSessionRequest struct {
	Name             string
	StartDate        string // YYYY-MM-DD
	SprintCount      int
	SprintLengthDays int
	IncludeIPSprint  bool
}

// SessionUpdate holds optional field changes for a session still in
// draft or planning. Nil fields are left untouched.
type SessionUpdate struct {
	Name             *string
	StartDate        *string
	SprintCount      *int
	SprintLengthDays *int
	IncludeIPSprint  *bool
}

type SessionService interface {
	Create(ctx context.Context, req CreateSessionRequest) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	// Sprints returns the session's sprint calendar ordered by number.
	Sprints(ctx context.Context, id string) ([]*domain.Sprint, error)
	// Update applies field changes and regenerates the sprint calendar
	// when calendar-shaping fields change. Sessions past planning are
	// rejected.
	Update(ctx context.Context, id string, upd SessionUpdate) (*domain.Session, error)
	// Transition enforces the session status state machine.
	Transition(ctx context.Context, id string, to domain.SessionStatus) error
	// RegenerateCalendar rebuilds every sprint from the current session
	// fields and holiday calendar. All working-day counts change
	// together; there is no partial staleness.
	RegenerateCalendar(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TeamService interface {
	Add(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Remove(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a tracker feed import.
type ImportResult struct {
	TeamCount       int
	FeatureCount    int
	UpdatedCount    int
	DependencyCount int
}

type FeatureService interface {
	// ImportFeed upserts the feed's teams and features into the session
	// backlog, keyed by feature key. Existing assignments survive the
	// re-import of their feature.
	ImportFeed(ctx context.Context, sessionID string, feed *tracker.Feed) (*ImportResult, error)
	GetByKey(ctx context.Context, sessionID, key string) (*domain.Feature, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Feature, error)
	Remove(ctx context.Context, sessionID, key string) error
}

// AssignRequest is one manual or programmatic placement request.
type AssignRequest struct {
	SessionID           string
	Proposed            contract.Proposed
	IsManualOverride    bool
	AllowOverflow       bool // manual assignments may opt in to overflow
	RespectDependencies bool
	Rationale           string
}

type PlanService interface {
	// Assign validates the placement under the session lock and upserts
	// the assignment on acceptance. A rejection is reported in the
	// result, not as an error.
	Assign(ctx context.Context, req AssignRequest) (*contract.ValidationResult, error)
	// Unassign removes a feature's assignment. Unassigning an
	// unassigned feature is a no-op success.
	Unassign(ctx context.Context, sessionID, featureKey string) error
	// CapacitySummary recomputes per-sprint load for one team, or for
	// all teams when teamID is empty. Never cached.
	CapacitySummary(ctx context.Context, sessionID, teamID string) ([]contract.CapacitySummaryRow, error)
	// Kanban builds the board view: one lane per team, one column per
	// sprint, plus the unassigned backlog.
	Kanban(ctx context.Context, sessionID string) (*contract.KanbanBoard, error)
}

// PreviewResult is the dry-run outcome of an AI planning pass.
type PreviewResult struct {
	Candidates []contract.ProposedAssignment
	Reconcile  *contract.ReconcileResult
}

type ReconcileService interface {
	// Preview asks the AI proposer for a candidate plan and reconciles
	// it against current state. The proposer call happens before the
	// session lock is taken; nothing is committed.
	Preview(ctx context.Context, sessionID string, opts contract.ProposeOptions) (*PreviewResult, error)
	// PreviewCandidates reconciles an externally supplied candidate
	// list without calling the proposer.
	PreviewCandidates(ctx context.Context, sessionID string, candidates []contract.ProposedAssignment, opts contract.ProposeOptions) (*contract.ReconcileResult, error)
	// Apply re-validates the candidates against fresh state under the
	// session lock and commits the accepted subset in one transaction.
	Apply(ctx context.Context, sessionID string, candidates []contract.ProposedAssignment, opts contract.ProposeOptions) (*contract.ReconcileResult, error)
}

type VersionService interface {
	// Snapshot deep-copies the live assignment set into a new immutable
	// version. Versions are append-only.
	Snapshot(ctx context.Context, sessionID, label, comment string) (*domain.PlanVersion, error)
	// List returns versions newest first.
	List(ctx context.Context, sessionID string) ([]*domain.PlanVersion, error)
	// Restore atomically replaces the live assignment set with the
	// snapshot's contents. The pre-restore state is NOT snapshotted
	// implicitly; callers wanting undo must snapshot first.
	Restore(ctx context.Context, sessionID, versionID string) error
}
