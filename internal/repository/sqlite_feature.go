package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
)

// featureColumns is the canonical SELECT column list for features.
const featureColumns = `id, session_id, key, external_key, title, points, estimated_sprints, created_at, updated_at`

// SQLiteFeatureRepo implements FeatureRepo using a SQLite database.
// Dependencies are stored ordered in the feature_dependencies child table.
type SQLiteFeatureRepo struct {
	db db.DBTX
}

// NewSQLiteFeatureRepo creates a new SQLiteFeatureRepo.
func NewSQLiteFeatureRepo(db db.DBTX) *SQLiteFeatureRepo {
	return &SQLiteFeatureRepo{db: db}
}

func (r *SQLiteFeatureRepo) Create(ctx context.Context, f *domain.Feature) error {
	query := `INSERT INTO features (id, session_id, key, external_key, title, points, estimated_sprints, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.SessionID,
		f.Key,
		f.ExternalKey,
		f.Title,
		f.Points,
		f.EstimatedSprints,
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting feature: %w", err)
	}
	return r.writeDependencies(ctx, f)
}

func (r *SQLiteFeatureRepo) GetByKey(ctx context.Context, sessionID, key string) (*domain.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features WHERE session_id = ? AND key = ?`
	row := r.db.QueryRowContext(ctx, query, sessionID, key)
	f, err := scanFeature(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("feature: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadDependencies(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *SQLiteFeatureRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features WHERE session_id = ? ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	defer rows.Close()

	var features []*domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows.Scan)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	for _, f := range features {
		if err := r.loadDependencies(ctx, f); err != nil {
			return nil, err
		}
	}
	return features, nil
}

func (r *SQLiteFeatureRepo) Update(ctx context.Context, f *domain.Feature) error {
	query := `UPDATE features SET external_key = ?, title = ?, points = ?, estimated_sprints = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		f.ExternalKey,
		f.Title,
		f.Points,
		f.EstimatedSprints,
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating feature: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("feature: %w", ErrNotFound)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM feature_dependencies WHERE feature_id = ?`, f.ID); err != nil {
		return fmt.Errorf("clearing dependencies: %w", err)
	}
	return r.writeDependencies(ctx, f)
}

func (r *SQLiteFeatureRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM features WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting feature: %w", err)
	}
	return nil
}

func (r *SQLiteFeatureRepo) writeDependencies(ctx context.Context, f *domain.Feature) error {
	for i, d := range f.Dependencies {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO feature_dependencies (feature_id, target_feature_key, kind, ord) VALUES (?, ?, ?, ?)`,
			f.ID, d.TargetFeatureKey, string(d.Kind), i)
		if err != nil {
			return fmt.Errorf("inserting dependency: %w", err)
		}
	}
	return nil
}

func (r *SQLiteFeatureRepo) loadDependencies(ctx context.Context, f *domain.Feature) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT target_feature_key, kind FROM feature_dependencies WHERE feature_id = ? ORDER BY ord`, f.ID)
	if err != nil {
		return fmt.Errorf("loading dependencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Dependency
		var kind string
		if err := rows.Scan(&d.TargetFeatureKey, &kind); err != nil {
			return fmt.Errorf("scanning dependency: %w", err)
		}
		d.Kind = domain.DependencyKind(kind)
		f.Dependencies = append(f.Dependencies, d)
	}
	return rows.Err()
}

// scanFeature scans one feature row using the supplied scan function.
func scanFeature(scan func(dest ...any) error) (*domain.Feature, error) {
	var f domain.Feature
	var createdStr, updatedStr string

	err := scan(
		&f.ID, &f.SessionID, &f.Key, &f.ExternalKey, &f.Title,
		&f.Points, &f.EstimatedSprints, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning feature: %w", err)
	}

	if f.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing feature created_at: %w", err)
	}
	if f.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing feature updated_at: %w", err)
	}
	return &f, nil
}
