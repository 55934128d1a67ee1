package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"vaultspace/internal/config"
	"vaultspace/internal/repository/postgres"
	"vaultspace/internal/seed"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "migrate and fill the database with demo data",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drop-tables",
				Usage: "roll back every migration first (fresh start)",
			},
		},
		Action: seedAction,
	}
}

func seedAction(ctx context.Context, c *cli.Command) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Environment == "prod" {
		return errors.New("seeding is disabled in the prod environment")
	}

	logger, closeLogger, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeLogger()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	migrator := postgres.NewMigrator(a.pool, cfg.TablePrefix, logger)
	if c.Bool("drop-tables") {
		if err := migrator.Reset(ctx); err != nil {
			return err
		}
	}
	if err := migrator.Up(ctx); err != nil {
		return err
	}

	res, err := seed.NewSeeder(seed.Services{
		Accounts:   a.accounts,
		Workspaces: a.workspaces,
		Members:    a.members,
		Media:      a.media,
		Documents:  a.documents,
		Comments:   a.comments,
		Teams:      a.teams,
	}, logger).Seed(ctx)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		logger.Info("demo data already present, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("seeded workspace %d; log in as alice / %s\n", res.WorkspaceID, seed.DemoPassword)
	return nil
}
