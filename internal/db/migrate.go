package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseDialect translates the sqlx driver name into the dialect name
// goose expects. Both drivers we support are spelled differently there.
func gooseDialect(driver string) string {
	switch driver {
	case "sqlite":
		return "sqlite3"
	case "pgx":
		return "postgres"
	}
	return driver
}

func prepareGoose(driver string) error {
	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	goose.SetBaseFS(migrations)
	return nil
}

// RunMigrations brings the local state schema (project cache, auth
// session) up to date.
func RunMigrations(db *sql.DB, driver string) error {
	if err := prepareGoose(driver); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("local state schema up to date")
	return nil
}

func MigrateDown(db *sql.DB, driver string) error {
	if err := prepareGoose(driver); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}
