package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// CommentRepository defines data access operations for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, workspaceID, id int64) (*models.Comment, error)
	List(ctx context.Context, filter *models.CommentFilter) ([]models.Comment, error)
	Delete(ctx context.Context, workspaceID, id int64) error
}
