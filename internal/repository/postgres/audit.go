package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
)

// PostgresAuditRepository implements the AuditRepository interface
type PostgresAuditRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(config *RepositoryConfig) repositories.AuditRepository {
	return &PostgresAuditRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends an audit record
func (r *PostgresAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, actor_id, action, detail)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.AuditLogs)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.WorkspaceID,
		entry.ActorID,
		entry.Action,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
