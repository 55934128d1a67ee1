package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"vaultspace/internal/config"
	"vaultspace/internal/repository/postgres"
)

type migrateOp int

const (
	migrateUp migrateOp = iota
	migrateDown
	migrateStatus
)

// migrateAction runs one migration command against DATABASE_URL for the
// environment's table prefix
func migrateAction(op migrateOp) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		cfg := config.Load()
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}

		logger, closeLogger, err := config.NewLogger(cfg, os.Stdout)
		if err != nil {
			return err
		}
		defer closeLogger()

		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrator := postgres.NewMigrator(pool, cfg.TablePrefix, logger)
		switch op {
		case migrateDown:
			return migrator.Down(ctx)
		case migrateStatus:
			return migrator.Status(ctx)
		default:
			return migrator.Up(ctx)
		}
	}
}
