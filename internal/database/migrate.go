package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/momentum/schemas"
)

// Migrate applies the embedded migrations that have not been applied yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return migrate(ctx, db, schemas.Migrations)
}

func migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) NOT NULL PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`,
	); err != nil {
		return fmt.Errorf("db.ExecContext(create schema_migrations) > %w", err)
	}

	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("fs.ReadDir(migrations) > %w", err)
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := isMigrationApplied(ctx, db, version)
		if err != nil {
			return fmt.Errorf("isMigrationApplied(%s) > %w", version, err)
		}
		if applied {
			slog.Default().Debug("migration already applied", "version", version)
			continue
		}

		statements, err := fs.ReadFile(migrations, "migrations/"+version)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", version, err)
		}
		if _, err := db.ExecContext(ctx, string(statements)); err != nil {
			return fmt.Errorf("apply migration %s > %w", version, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("db.ExecContext(insert schema_migrations) > %w", err)
		}
		slog.Default().Info("migration applied", "version", version)
	}
	return nil
}

func isMigrationApplied(ctx context.Context, db *sqlx.DB, version string) (bool, error) {
	var v string
	err := db.GetContext(ctx, &v, `SELECT version FROM schema_migrations WHERE version = ?`, version)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
