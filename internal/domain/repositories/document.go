package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a document and fills in ID, Version and CreatedAt
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document scoped to its workspace
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Document, error)

	// List retrieves all documents in a workspace, newest first
	List(ctx context.Context, workspaceID int64) ([]models.Document, error)

	// Update persists title/content/media_id/doc_type and bumps version by one.
	// doc.Version is refreshed from the database.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document
	Delete(ctx context.Context, workspaceID, id int64) error
}
