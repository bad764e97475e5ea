package db

import (
	"context"
	"database/sql"
)

// DBTX abstracts the query surface shared by *sql.DB and *sql.Tx, so a
// repository can run against the pool or inside a unit-of-work transaction
// without knowing which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
