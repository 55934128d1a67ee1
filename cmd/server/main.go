package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"vaultspace/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:   "vaultspace",
		Usage:  "encrypted workspace media and document server",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "migrate",
				Usage: "apply or inspect schema migrations",
				Commands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateAction(migrateUp)},
					{Name: "down", Usage: "roll back the latest migration", Action: migrateAction(migrateDown)},
					{Name: "status", Usage: "print migration status", Action: migrateAction(migrateStatus)},
				},
			},
			seedCommand(),
			{
				Name:  "keygen",
				Usage: "print a new FILE_ENCRYPTION_KEY",
				Action: func(_ context.Context, _ *cli.Command) error {
					key, err := storage.GenerateKey()
					if err != nil {
						return err
					}
					fmt.Println(key)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
