package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// versionAssignment is the serialized form of one assignment inside a
// plan version payload. Parsed once on read, never passed around raw.
type versionAssignment struct {
	ID               string `json:"id"`
	FeatureKey       string `json:"feature_key"`
	TeamID           string `json:"team_id"`
	StartSprint      int    `json:"start_sprint"`
	EndSprint        int    `json:"end_sprint"`
	AllocatedPoints  int    `json:"allocated_points"`
	IsManualOverride bool   `json:"is_manual_override"`
	Rationale        string `json:"rationale,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// SQLitePlanVersionRepo implements PlanVersionRepo using a SQLite database.
// The assignment set is stored as a JSON payload column; versions are
// append-only and never updated after creation.
type SQLitePlanVersionRepo struct {
	db db.DBTX
}

// NewSQLitePlanVersionRepo creates a new SQLitePlanVersionRepo.
func NewSQLitePlanVersionRepo(db db.DBTX) *SQLitePlanVersionRepo {
	return &SQLitePlanVersionRepo{db: db}
}

func (r *SQLitePlanVersionRepo) Create(ctx context.Context, v *domain.PlanVersion) error {
	payload, err := marshalPayload(v.Assignments)
	if err != nil {
		return err
	}
	query := `INSERT INTO plan_versions (id, session_id, label, comment, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		v.SessionID,
		v.Label,
		v.Comment,
		payload,
		formatTime(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan version: %w", err)
	}
	return nil
}

func (r *SQLitePlanVersionRepo) GetByID(ctx context.Context, id string) (*domain.PlanVersion, error) {
	query := `SELECT id, session_id, label, comment, payload, created_at FROM plan_versions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	v, err := scanPlanVersion(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan version: %w", ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (r *SQLitePlanVersionRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.PlanVersion, error) {
	query := `SELECT id, session_id, label, comment, payload, created_at
		FROM plan_versions WHERE session_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing plan versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.PlanVersion
	for rows.Next() {
		v, err := scanPlanVersion(rows.Scan)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan versions: %w", err)
	}
	return versions, nil
}

func marshalPayload(assignments []domain.Assignment) (string, error) {
	entries := make([]versionAssignment, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, versionAssignment{
			ID:               a.ID,
			FeatureKey:       a.FeatureKey,
			TeamID:           a.TeamID,
			StartSprint:      a.StartSprint,
			EndSprint:        a.EndSprint,
			AllocatedPoints:  a.AllocatedPoints,
			IsManualOverride: a.IsManualOverride,
			Rationale:        a.Rationale,
			CreatedAt:        formatTime(a.CreatedAt),
			UpdatedAt:        formatTime(a.UpdatedAt),
		})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling version payload: %w", err)
	}
	return string(data), nil
}

func unmarshalPayload(sessionID, payload string) ([]domain.Assignment, error) {
	var entries []versionAssignment
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("decoding version payload: %w", err)
	}
	assignments := make([]domain.Assignment, 0, len(entries))
	for _, e := range entries {
		created, err := parseTime(e.CreatedAt)
		if err != nil {
			created = time.Time{}
		}
		updated, err := parseTime(e.UpdatedAt)
		if err != nil {
			updated = time.Time{}
		}
		assignments = append(assignments, domain.Assignment{
			ID:               e.ID,
			SessionID:        sessionID,
			FeatureKey:       e.FeatureKey,
			TeamID:           e.TeamID,
			StartSprint:      e.StartSprint,
			EndSprint:        e.EndSprint,
			AllocatedPoints:  e.AllocatedPoints,
			IsManualOverride: e.IsManualOverride,
			Rationale:        e.Rationale,
			CreatedAt:        created,
			UpdatedAt:        updated,
		})
	}
	return assignments, nil
}

// scanPlanVersion scans one plan version row using the supplied scan function.
func scanPlanVersion(scan func(dest ...any) error) (*domain.PlanVersion, error) {
	var v domain.PlanVersion
	var payload, createdStr string

	err := scan(&v.ID, &v.SessionID, &v.Label, &v.Comment, &payload, &createdStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan version: %w", err)
	}

	if v.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing version created_at: %w", err)
	}
	if v.Assignments, err = unmarshalPayload(v.SessionID, payload); err != nil {
		return nil, err
	}
	return &v, nil
}
