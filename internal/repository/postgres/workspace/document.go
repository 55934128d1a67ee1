package workspace

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/repository/postgres"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = `id, workspace_id, title, content, media_id, doc_type, version, created_at`

func scanDocument(row interface{ Scan(...any) error }, d *models.Document) error {
	return row.Scan(
		&d.ID,
		&d.WorkspaceID,
		&d.Title,
		&d.Content,
		&d.MediaID,
		&d.DocType,
		&d.Version,
		&d.CreatedAt,
	)
}

// Create inserts a document at version 1
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, title, content, media_id, doc_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.WorkspaceID,
		doc.Title,
		doc.Content,
		doc.MediaID,
		doc.DocType,
	).Scan(&doc.ID, &doc.Version, &doc.CreatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: media not found", domain.ErrValidation)
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document scoped to its workspace
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND workspace_id = $2`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanDocument(executor.QueryRow(ctx, query, id, workspaceID), &doc); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// List retrieves the documents of a workspace, newest first
func (r *PostgresDocumentRepository) List(ctx context.Context, workspaceID int64) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE workspace_id = $1
		ORDER BY created_at DESC, id DESC
	`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// Update persists a document and increments its version
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, media_id = $3, doc_type = $4, version = version + 1
		WHERE id = $5 AND workspace_id = $6
		RETURNING version
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Title,
		doc.Content,
		doc.MediaID,
		doc.DocType,
		doc.ID,
		doc.WorkspaceID,
	).Scan(&doc.Version)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("document %d: %w", doc.ID, domain.ErrNotFound)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: media not found", domain.ErrValidation)
		}
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete removes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, workspaceID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND workspace_id = $2`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
