// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// RunMigrations applies all pending schema migrations.
func RunMigrations(db *sql.DB) error {
	return migrate(db, goose.Up)
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sql.DB) error {
	return migrate(db, goose.Down)
}

// MigrateReset rolls back the whole schema.
func MigrateReset(db *sql.DB) error {
	return migrate(db, goose.Reset)
}

func migrate(db *sql.DB, op func(*sql.DB, string, ...goose.OptionsFunc) error) error {
	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return op(db, "migrations")
}
