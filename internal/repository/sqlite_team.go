package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// teamColumns is the canonical SELECT column list for teams.
const teamColumns = `id, session_id, name, board_id, velocity, adjustment_pct, created_at, updated_at`

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
// Per-sprint capacity overrides live in the team_sprint_overrides child
// table and are loaded with every read.
type SQLiteTeamRepo struct {
	db db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(db db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: db}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (id, session_id, name, board_id, velocity, adjustment_pct, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.SessionID,
		t.Name,
		t.BoardID,
		t.Velocity,
		t.AdjustmentPct,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return r.writeOverrides(ctx, t)
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTeam(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadOverrides(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTeamRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE session_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		t, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	for _, t := range teams {
		if err := r.loadOverrides(ctx, t); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *SQLiteTeamRepo) Update(ctx context.Context, t *domain.Team) error {
	query := `UPDATE teams SET name = ?, board_id = ?, velocity = ?, adjustment_pct = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.BoardID,
		t.Velocity,
		t.AdjustmentPct,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("team: %w", ErrNotFound)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM team_sprint_overrides WHERE team_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing sprint overrides: %w", err)
	}
	return r.writeOverrides(ctx, t)
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM teams WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) writeOverrides(ctx context.Context, t *domain.Team) error {
	for num, pts := range t.SprintOverrides {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO team_sprint_overrides (team_id, sprint_num, capacity_points) VALUES (?, ?, ?)`,
			t.ID, num, pts)
		if err != nil {
			return fmt.Errorf("inserting sprint override: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTeamRepo) loadOverrides(ctx context.Context, t *domain.Team) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sprint_num, capacity_points FROM team_sprint_overrides WHERE team_id = ?`, t.ID)
	if err != nil {
		return fmt.Errorf("loading sprint overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var num, pts int
		if err := rows.Scan(&num, &pts); err != nil {
			return fmt.Errorf("scanning sprint override: %w", err)
		}
		if t.SprintOverrides == nil {
			t.SprintOverrides = make(map[int]int)
		}
		t.SprintOverrides[num] = pts
	}
	return rows.Err()
}

// scanTeam scans one team row using the supplied scan function.
func scanTeam(scan func(dest ...any) error) (*domain.Team, error) {
	var t domain.Team
	var createdStr, updatedStr string

	err := scan(
		&t.ID, &t.SessionID, &t.Name, &t.BoardID, &t.Velocity, &t.AdjustmentPct,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning team: %w", err)
	}

	if t.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing team created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing team updated_at: %w", err)
	}
	return &t, nil
}
