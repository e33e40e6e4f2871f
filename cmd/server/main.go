// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/database"
	"github.com/planora/planora/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "planora",
		Usage:  "Event scheduling API server",
		Flags:  config.Flags(),
		Action: server.Run,
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Manage database migrations",
				Commands: []*cli.Command{
					{
						Name:   "down",
						Usage:  "Roll back the last migration",
						Action: migrateAction(database.MigrateDown),
					},
					{
						Name:   "reset",
						Usage:  "Roll back all migrations",
						Action: migrateAction(database.MigrateReset),
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateAction(fn func(*sql.DB) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		db, err := database.Open(cmd.String("database-dsn"))
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()
		return fn(db.DB)
	}
}
