package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// UserRepository defines data access operations for user accounts
type UserRepository interface {
	// Create inserts a user. Duplicate email or username returns a ConflictError.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile persists username and profile fields
	UpdateProfile(ctx context.Context, user *models.User) error

	// RecentWorkspaces returns the user's latest memberships, newest first
	RecentWorkspaces(ctx context.Context, userID int64, limit int) ([]models.RecentWorkspace, error)
}
