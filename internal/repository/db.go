package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = sql.ErrNoRows

// NewDB opens the database and checks the connection. The driver must be
// registered by the caller ("postgres" or "sqlite").
func NewDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		return nil, errors.New("database driver is required")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS oauth_tokens (
		user_id       TEXT PRIMARY KEY,
		access_token  TEXT NOT NULL,
		token_type    TEXT NOT NULL DEFAULT 'Bearer',
		refresh_token TEXT NOT NULL DEFAULT '',
		expiry_unix   BIGINT,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS notification_settings (
		namespace  TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		enabled    BOOLEAN NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, user_id)
	)`,
}

// Migrate creates the tables the app needs. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func deleted(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
