package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// sessionColumns is the canonical SELECT column list for sessions.
const sessionColumns = `id, name, status, start_date, sprint_count,
		sprint_length_days, include_ip_sprint, current_version, created_at, updated_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, name, status, start_date, sprint_count,
		sprint_length_days, include_ip_sprint, current_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.Status),
		s.StartDate.Format("2006-01-02"),
		s.SprintCount,
		s.SprintLengthDays,
		boolToInt(s.IncludeIPSprint),
		s.CurrentVersion,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSession(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	query := `UPDATE sessions SET name = ?, status = ?, start_date = ?, sprint_count = ?,
		sprint_length_days = ?, include_ip_sprint = ?, current_version = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		string(s.Status),
		s.StartDate.Format("2006-01-02"),
		s.SprintCount,
		s.SprintLengthDays,
		boolToInt(s.IncludeIPSprint),
		s.CurrentVersion,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// scanSession scans one session row using the supplied scan function.
func scanSession(scan func(dest ...any) error) (*domain.Session, error) {
	var s domain.Session
	var status, startDateStr, createdStr, updatedStr string
	var includeIP int

	err := scan(
		&s.ID, &s.Name, &status, &startDateStr, &s.SprintCount,
		&s.SprintLengthDays, &includeIP, &s.CurrentVersion, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.Status = domain.SessionStatus(status)
	s.IncludeIPSprint = intToBool(includeIP)

	s.StartDate, err = parseDate(startDateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	s.CreatedAt, err = parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = parseTime(updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
