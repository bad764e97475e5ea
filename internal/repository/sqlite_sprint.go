package repository

import (
	"context"
	"fmt"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(db db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: db}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, sp *domain.Sprint) error {
	query := `INSERT INTO sprints (id, session_id, num, start_date, end_date, is_ip_sprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		sp.ID,
		sp.SessionID,
		sp.Num,
		sp.StartDate.Format("2006-01-02"),
		sp.EndDate.Format("2006-01-02"),
		boolToInt(sp.IsIPSprint),
		formatTime(sp.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Sprint, error) {
	query := `SELECT id, session_id, num, start_date, end_date, is_ip_sprint, created_at
		FROM sprints WHERE session_id = ? ORDER BY num`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		var sp domain.Sprint
		var startStr, endStr, createdStr string
		var isIP int
		if err := rows.Scan(&sp.ID, &sp.SessionID, &sp.Num, &startStr, &endStr, &isIP, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning sprint: %w", err)
		}
		sp.IsIPSprint = intToBool(isIP)
		if sp.StartDate, err = parseDate(startStr); err != nil {
			return nil, fmt.Errorf("parsing sprint start_date: %w", err)
		}
		if sp.EndDate, err = parseDate(endStr); err != nil {
			return nil, fmt.Errorf("parsing sprint end_date: %w", err)
		}
		if sp.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, fmt.Errorf("parsing sprint created_at: %w", err)
		}
		sprints = append(sprints, &sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func (r *SQLiteSprintRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sprints WHERE session_id = ?`
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("deleting sprints: %w", err)
	}
	return nil
}
