// Package storage owns the process-wide Postgres handle. The pool is opened
// once via Connect and injected into services; repositories only ever see the
// dbx.DBTX view of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsmirnov/stockfolio/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Handle wraps the shared *sql.DB. Connect is idempotent: the second and
// later calls return without touching the pool. The connected flag is a plain
// check-then-act, which is only correct because the app connects once during
// single-threaded startup; switch to sync.Once before connecting from
// multiple goroutines.
type Handle struct {
	dsn       string
	db        *sql.DB
	connected bool
}

func NewHandle(dsn string) *Handle {
	return &Handle{dsn: dsn}
}

// Connect opens the pool, verifies connectivity and applies the embedded
// goose migrations.
func (h *Handle) Connect(ctx context.Context) error {
	if h.connected {
		return nil
	}

	db, err := sql.Open("pgx", h.dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migration error: %w", err)
	}

	h.db = db
	h.connected = true
	return nil
}

// DB returns the shared pool. Valid only after a successful Connect.
func (h *Handle) DB() *sql.DB {
	return h.db
}

func (h *Handle) Close() error {
	if !h.connected {
		return nil
	}
	h.connected = false
	return h.db.Close()
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
