package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// WorkspaceRepository defines data access operations for workspaces
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id int64) (*models.Workspace, error)

	// ListForUser returns the workspaces the user is a member of
	ListForUser(ctx context.Context, userID int64) ([]models.Workspace, error)

	Update(ctx context.Context, ws *models.Workspace) error

	// Delete removes the workspace. Members, media, documents and comments
	// are removed by ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}

// MemberRepository defines data access operations for workspace memberships
type MemberRepository interface {
	// Create inserts a membership. A duplicate (workspace, user) pair returns
	// a ConflictError; an unknown user returns ErrNotFound.
	Create(ctx context.Context, member *models.WorkspaceMember) error

	// Get returns the membership of userID in workspaceID, or ErrNotFound
	Get(ctx context.Context, workspaceID, userID int64) (*models.WorkspaceMember, error)

	List(ctx context.Context, workspaceID int64) ([]models.WorkspaceMember, error)
	ListUserIDs(ctx context.Context, workspaceID int64) ([]int64, error)

	UpdateRole(ctx context.Context, workspaceID, userID int64, role models.Role) error
	Delete(ctx context.Context, workspaceID, userID int64) error

	// LockOwners row-locks the workspace's owner memberships for the rest of
	// the current transaction and returns how many there are.
	LockOwners(ctx context.Context, workspaceID int64) (int, error)
}
