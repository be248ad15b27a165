package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationsPath returns the migration source URL for a database driver.
func migrationsPath(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "file://migrations/postgresql", nil
	case "mysql":
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// RunMigrations applies all pending ledger schema migrations for the given driver.
// Returns nil when the schema is already current.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	sourceURL, err := migrationsPath(driver)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
