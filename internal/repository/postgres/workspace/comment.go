package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/repository/postgres"
)

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *postgres.RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const commentColumns = `id, workspace_id, author_id, target_type, target_id, body, created_at`

func scanComment(row interface{ Scan(...any) error }, c *models.Comment) error {
	var target string
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.AuthorID, &target, &c.TargetID, &c.Body, &c.CreatedAt); err != nil {
		return err
	}
	c.TargetType = models.CommentTarget(target)
	return nil
}

// Create inserts a comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, author_id, target_type, target_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Comments)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		comment.WorkspaceID,
		comment.AuthorID,
		string(comment.TargetType),
		comment.TargetID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment scoped to its workspace
func (r *PostgresCommentRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND workspace_id = $2`, commentColumns, r.tables.Comments)

	var c models.Comment
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanComment(executor.QueryRow(ctx, query, id, workspaceID), &c); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// List retrieves comments, oldest first, optionally narrowed to one target
func (r *PostgresCommentRepository) List(ctx context.Context, filter *models.CommentFilter) ([]models.Comment, error) {
	where := []string{"workspace_id = $1"}
	args := []any{filter.WorkspaceID}
	if filter.TargetType != "" {
		args = append(args, string(filter.TargetType))
		where = append(where, fmt.Sprintf("target_type = $%d", len(args)))
	}
	if filter.TargetID != 0 {
		args = append(args, filter.TargetID)
		where = append(where, fmt.Sprintf("target_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY created_at, id
	`, commentColumns, r.tables.Comments, strings.Join(where, " AND "))

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment
func (r *PostgresCommentRepository) Delete(ctx context.Context, workspaceID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND workspace_id = $2`, r.tables.Comments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
