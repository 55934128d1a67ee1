package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// CreateWorkspaceRequest represents a request to create a workspace
type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

// UpdateWorkspaceRequest represents a request to rename a workspace
type UpdateWorkspaceRequest struct {
	Name string `json:"name"`
}

// WorkspaceService defines business logic operations for workspaces
type WorkspaceService interface {
	// CreateWorkspace creates a workspace with the caller as its first owner
	CreateWorkspace(ctx context.Context, userID int64, req *CreateWorkspaceRequest) (*models.Workspace, error)

	// ListWorkspaces returns the workspaces the caller belongs to
	ListWorkspaces(ctx context.Context, userID int64) ([]models.Workspace, error)

	GetWorkspace(ctx context.Context, userID, workspaceID int64) (*models.Workspace, error)
	UpdateWorkspace(ctx context.Context, userID, workspaceID int64, req *UpdateWorkspaceRequest) (*models.Workspace, error)

	// DeleteWorkspace removes the workspace and everything it owns
	DeleteWorkspace(ctx context.Context, userID, workspaceID int64) error
}

// AddMemberRequest invites a user into a workspace
type AddMemberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// ChangeRoleRequest changes a member's role
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// MemberService manages workspace memberships. It enforces the owner-grant
// ceiling, owner protection and the last-owner rule.
type MemberService interface {
	ListMembers(ctx context.Context, userID, workspaceID int64) ([]models.WorkspaceMember, error)
	AddMember(ctx context.Context, userID, workspaceID int64, req *AddMemberRequest) (*models.WorkspaceMember, error)
	ChangeRole(ctx context.Context, userID, workspaceID, targetUserID int64, req *ChangeRoleRequest) (*models.WorkspaceMember, error)
	RemoveMember(ctx context.Context, userID, workspaceID, targetUserID int64) error
}
