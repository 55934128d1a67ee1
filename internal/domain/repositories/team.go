package repositories

import (
	"context"

	"vaultspace/internal/domain/models"
)

// TeamRepository defines data access operations for teams and their links
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)

	// ListForUser returns the teams the user belongs to
	ListForUser(ctx context.Context, userID int64) ([]models.Team, error)

	// AddMember inserts a team membership. Returns false when the user was
	// already a member (no row is written).
	AddMember(ctx context.Context, member *models.TeamMember) (bool, error)

	GetMember(ctx context.Context, teamID, userID int64) (*models.TeamMember, error)
	ListMembers(ctx context.Context, teamID int64) ([]models.TeamMemberDetail, error)
	ListMemberUserIDs(ctx context.Context, teamID int64) ([]int64, error)

	// AttachWorkspace links a workspace to a team. Returns false when the
	// link already existed.
	AttachWorkspace(ctx context.Context, teamID, workspaceID int64) (bool, error)
}
