package services

import (
	"context"

	"vaultspace/internal/domain/models"
	"vaultspace/internal/policy"
)

// Authorizer is the single authorization guard every service calls before
// touching a protected resource. Roles are compared case-insensitively.
//
// Failures: ErrNotMember when the caller has no membership, ErrInsufficientRole
// when the role is outside the required set. Both match domain.ErrForbidden.
type Authorizer interface {
	// ResolveRole returns the caller's workspace membership or ErrNotMember
	ResolveRole(ctx context.Context, userID, workspaceID int64) (*models.WorkspaceMember, error)

	// ResolveTeamRole returns the caller's team membership or ErrNotTeamMember
	ResolveTeamRole(ctx context.Context, userID, teamID int64) (*models.TeamMember, error)

	// Authorize checks the caller's role against an explicit role set
	Authorize(ctx context.Context, userID, workspaceID int64, required policy.RoleSet) (*models.WorkspaceMember, error)

	// AuthorizeAction checks the caller's role against the registry entry for action
	AuthorizeAction(ctx context.Context, userID, workspaceID int64, action policy.Action) (*models.WorkspaceMember, error)
}

// RegisterRequest is a request to create an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries credentials for a token
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountService registers users, issues tokens and resolves bearer tokens
type AccountService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*models.AccessToken, error)

	// Authenticate resolves a bearer token to a user id
	Authenticate(ctx context.Context, token string) (int64, error)
}
