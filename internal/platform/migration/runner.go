// Copyright (c) 2026 SafeCampus. All rights reserved.

/*
Package migration runs SQL schema migrations at application startup.

It wraps 'golang-migrate/migrate' with file-based sources. Migrations are
idempotent: an up-to-date schema is not an error.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up applies all pending migrations from sourcePath against databaseURL.
//
// Parameters:
//   - databaseURL: A postgres:// connection string.
//   - sourcePath: Filesystem path to the migrations directory.
//   - logger: Receives progress messages.
//
// Returns:
//   - nil when the schema is current (including ErrNoChange).
//   - A wrapped error on any migration failure.
func Up(databaseURL, sourcePath string, logger *slog.Logger) error {
	m, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("migration_init_failed: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("migration_close_source_failed", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("migration_close_database_failed", "error", dbErr)
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_schema_current")
			return nil
		}
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migration_version_failed: %w", err)
	}

	logger.Info("migration_applied", "version", version, "dirty", dirty)
	return nil
}
