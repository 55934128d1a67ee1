package auth

import (
	"context"
	"errors"
	"fmt"

	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
)

// RoleGuard implements Authorizer using workspace and team memberships.
// A missing membership is reported as ErrNotMember before any role check.
type RoleGuard struct {
	memberRepo repositories.MemberRepository
	teamRepo   repositories.TeamRepository
	policies   *policy.Registry
}

// NewRoleGuard creates a new membership-based authorizer
func NewRoleGuard(
	memberRepo repositories.MemberRepository,
	teamRepo repositories.TeamRepository,
	policies *policy.Registry,
) *RoleGuard {
	return &RoleGuard{
		memberRepo: memberRepo,
		teamRepo:   teamRepo,
		policies:   policies,
	}
}

var _ services.Authorizer = (*RoleGuard)(nil)

// ResolveRole looks up the caller's membership and normalizes its role
func (g *RoleGuard) ResolveRole(ctx context.Context, userID, workspaceID int64) (*models.WorkspaceMember, error) {
	member, err := g.memberRepo.Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotMember
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	member.Role = models.NormalizeRole(string(member.Role))
	return member, nil
}

// ResolveTeamRole looks up the caller's team membership
func (g *RoleGuard) ResolveTeamRole(ctx context.Context, userID, teamID int64) (*models.TeamMember, error) {
	member, err := g.teamRepo.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotTeamMember
		}
		return nil, fmt.Errorf("resolve team role: %w", err)
	}
	return member, nil
}

// Authorize resolves the caller's role and requires it to be in required
func (g *RoleGuard) Authorize(ctx context.Context, userID, workspaceID int64, required policy.RoleSet) (*models.WorkspaceMember, error) {
	member, err := g.ResolveRole(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !required.Contains(member.Role) {
		return nil, domain.ErrInsufficientRole
	}
	return member, nil
}

// AuthorizeAction is Authorize with the role set taken from the policy registry
func (g *RoleGuard) AuthorizeAction(ctx context.Context, userID, workspaceID int64, action policy.Action) (*models.WorkspaceMember, error) {
	required, err := g.policies.RolesFor(action)
	if err != nil {
		return nil, err
	}
	return g.Authorize(ctx, userID, workspaceID, required)
}

// CheckRoleGrant enforces the owner ceiling: only an owner may grant owner.
func CheckRoleGrant(actor *models.WorkspaceMember, role models.Role) error {
	if models.NormalizeRole(string(role)) == models.RoleOwner && !actor.IsOwner() {
		return domain.ErrOwnerGrantDenied
	}
	return nil
}

// CheckOwnerChange enforces owner protection: an owner membership may only be
// modified or removed by an owner.
func CheckOwnerChange(actor, target *models.WorkspaceMember) error {
	if target.IsOwner() && !actor.IsOwner() {
		return domain.ErrOwnerChangeDenied
	}
	return nil
}
