package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed schema/*.sql
var schemas embed.FS

// New opens the Postgres database backing the voucher API.
func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// OpenLocal opens the single-file sqlite database the client keeps its
// persisted session and caches in.
func OpenLocal(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging local database: %w", err)
	}

	return db, nil
}

// Migrate applies the embedded schema file for the given dialect ("postgres" or "sqlite").
// Every statement in the schema files is idempotent.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	body, err := schemas.ReadFile("schema/" + dialect + ".sql")
	if err != nil {
		return fmt.Errorf("reading %s schema: %w", dialect, err)
	}

	if _, err := db.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("applying %s schema: %w", dialect, err)
	}

	return nil
}
