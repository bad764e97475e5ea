package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// assignmentColumns is the canonical SELECT column list for assignments.
const assignmentColumns = `id, session_id, feature_key, team_id, start_sprint, end_sprint,
		allocated_points, is_manual_override, rationale, created_at, updated_at`

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
// The UNIQUE(session_id, feature_key) constraint backs the invariant of
// at most one active assignment per feature.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (id, session_id, feature_key, team_id, start_sprint, end_sprint,
		allocated_points, is_manual_override, rationale, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, feature_key) DO UPDATE SET
			team_id = excluded.team_id,
			start_sprint = excluded.start_sprint,
			end_sprint = excluded.end_sprint,
			allocated_points = excluded.allocated_points,
			is_manual_override = excluded.is_manual_override,
			rationale = excluded.rationale,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.SessionID,
		a.FeatureKey,
		a.TeamID,
		a.StartSprint,
		a.EndSprint,
		a.AllocatedPoints,
		boolToInt(a.IsManualOverride),
		a.Rationale,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByFeatureKey(ctx context.Context, sessionID, featureKey string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE session_id = ? AND feature_key = ?`
	row := r.db.QueryRowContext(ctx, query, sessionID, featureKey)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment: %w", ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE session_id = ? ORDER BY start_sprint, feature_key`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

func (r *SQLiteAssignmentRepo) DeleteByFeatureKey(ctx context.Context, sessionID, featureKey string) error {
	query := `DELETE FROM assignments WHERE session_id = ? AND feature_key = ?`
	if _, err := r.db.ExecContext(ctx, query, sessionID, featureKey); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ReplaceAll(ctx context.Context, sessionID string, assignments []*domain.Assignment) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}
	for _, a := range assignments {
		if err := r.Upsert(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// scanAssignment scans one assignment row using the supplied scan function.
func scanAssignment(scan func(dest ...any) error) (*domain.Assignment, error) {
	var a domain.Assignment
	var manual int
	var createdStr, updatedStr string

	err := scan(
		&a.ID, &a.SessionID, &a.FeatureKey, &a.TeamID, &a.StartSprint, &a.EndSprint,
		&a.AllocatedPoints, &manual, &a.Rationale, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	a.IsManualOverride = intToBool(manual)
	if a.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing assignment created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing assignment updated_at: %w", err)
	}
	return &a, nil
}
