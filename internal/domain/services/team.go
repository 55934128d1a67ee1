package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// CreateTeamRequest represents a request to create a team
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// TeamService defines business logic operations for teams
type TeamService interface {
	// CreateTeam creates a team with the caller as its owner member
	CreateTeam(ctx context.Context, userID int64, req *CreateTeamRequest) (*models.Team, error)

	ListTeams(ctx context.Context, userID int64) ([]models.Team, error)

	// JoinTeam adds the caller as a member; joining twice is a no-op
	JoinTeam(ctx context.Context, userID, teamID int64) error

	ListTeamMembers(ctx context.Context, userID, teamID int64) ([]models.TeamMemberDetail, error)

	// AttachWorkspace links a workspace to a team and copies the workspace's
	// members into the team. The caller needs owner/admin on the workspace.
	AttachWorkspace(ctx context.Context, userID, teamID, workspaceID int64) (*models.WorkspaceSync, error)
}
