package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations for one table prefix.
// Migration files reference ${TABLE_PREFIX}, substituted by goose ENVSUB.
type Migrator struct {
	pool   *pgxpool.Pool
	prefix string
	logger *slog.Logger
}

// NewMigrator creates a migrator for the tables named with prefix
func NewMigrator(pool *pgxpool.Pool, prefix string, logger *slog.Logger) *Migrator {
	return &Migrator{pool: pool, prefix: prefix, logger: logger}
}

func (m *Migrator) setup() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations directory: %w", err)
	}
	goose.SetBaseFS(dir)

	// Each environment keeps its own version table
	goose.SetTableName(m.prefix + "goose_db_version")

	if err := os.Setenv("TABLE_PREFIX", m.prefix); err != nil {
		return fmt.Errorf("set TABLE_PREFIX: %w", err)
	}
	return nil
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	m.logger.Info("migrations completed", "prefix", m.prefix)
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}

	m.logger.Info("rolled back one migration", "prefix", m.prefix)
	return nil
}

// Reset rolls back every applied migration, dropping all tables of the prefix
func (m *Migrator) Reset(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	if err := goose.ResetContext(ctx, db, "."); err != nil {
		return fmt.Errorf("reset migrations: %w", err)
	}

	m.logger.Warn("all migrations rolled back", "prefix", m.prefix)
	return nil
}

// Status prints the applied state of every migration
func (m *Migrator) Status(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}
