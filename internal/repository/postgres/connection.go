package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users            string
	Workspaces       string
	WorkspaceMembers string
	Teams            string
	TeamMembers      string
	TeamWorkspaces   string
	Media            string
	Documents        string
	Comments         string
	AuditLogs        string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:            fmt.Sprintf("%susers", prefix),
		Workspaces:       fmt.Sprintf("%sworkspaces", prefix),
		WorkspaceMembers: fmt.Sprintf("%sworkspace_members", prefix),
		Teams:            fmt.Sprintf("%steams", prefix),
		TeamMembers:      fmt.Sprintf("%steam_members", prefix),
		TeamWorkspaces:   fmt.Sprintf("%steam_workspaces", prefix),
		Media:            fmt.Sprintf("%smedia", prefix),
		Documents:        fmt.Sprintf("%sdocuments", prefix),
		Comments:         fmt.Sprintf("%scomments", prefix),
		AuditLogs:        fmt.Sprintf("%saudit_logs", prefix),
	}
}

// All returns every table in dependency order (children first)
func (t *TableNames) All() []string {
	return []string{
		t.AuditLogs,
		t.Comments,
		t.Documents,
		t.Media,
		t.TeamWorkspaces,
		t.TeamMembers,
		t.Teams,
		t.WorkspaceMembers,
		t.Workspaces,
		t.Users,
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Port 6543 is the conventional PgBouncer transaction pooler port, which does
// not support prepared statements. When it is detected and no explicit
// default_query_exec_mode was given in the URL, the pool switches to
// QueryExecModeCacheDescribe. Dynamic table prefixes are interpolated before
// the SQL reaches the server, so each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
// Repositories call it on every query so they join an enclosing ExecTx automatically.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
