package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// MediaRepository defines data access operations for media metadata.
// Blob content is handled by the storage layer.
type MediaRepository interface {
	// Create inserts a media row. A duplicate (workspace, original_filename)
	// returns a ConflictError.
	Create(ctx context.Context, media *models.Media) error

	GetByID(ctx context.Context, workspaceID, id int64) (*models.Media, error)

	// FilenameExists reports whether the workspace already has a media row
	// with this original filename
	FilenameExists(ctx context.Context, workspaceID int64, filename string) (bool, error)

	// List returns one page of media and the total count matching the filter
	List(ctx context.Context, filter *models.MediaFilter) ([]models.Media, int, error)

	// Update persists original_filename, description and tags
	Update(ctx context.Context, media *models.Media) error

	Delete(ctx context.Context, workspaceID, id int64) error

	// ListStoredPaths returns the blob path of every media row in a workspace
	ListStoredPaths(ctx context.Context, workspaceID int64) ([]string, error)
}
