package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
	"vaultspace/internal/service/auth"
)

// memberService implements the MemberService interface
type memberService struct {
	txManager  repositories.TransactionManager
	memberRepo repositories.MemberRepository
	guard      services.Authorizer
	audit      services.AuditSink
	logger     *slog.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	txManager repositories.TransactionManager,
	memberRepo repositories.MemberRepository,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.MemberService {
	return &memberService{
		txManager:  txManager,
		memberRepo: memberRepo,
		guard:      guard,
		audit:      audit,
		logger:     logger,
	}
}

// ListMembers lists the memberships of a workspace the caller belongs to
func (s *memberService) ListMembers(ctx context.Context, userID, workspaceID int64) ([]models.WorkspaceMember, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.memberRepo.List(ctx, workspaceID)
}

// AddMember invites a user. Only owners may grant owner.
func (s *memberService) AddMember(ctx context.Context, userID, workspaceID int64, req *services.AddMemberRequest) (*models.WorkspaceMember, error) {
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}

	actor, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionMemberManage)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckRoleGrant(actor, role); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Get(ctx, workspaceID, req.UserID); err == nil {
		return nil, &domain.ConflictError{
			Message:      "user is already a member of this workspace",
			ResourceType: "member",
			ResourceID:   strconv.FormatInt(req.UserID, 10),
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// A concurrent invite loses on the unique constraint and surfaces as a ConflictError
	member := &models.WorkspaceMember{WorkspaceID: workspaceID, UserID: req.UserID, Role: role}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member added",
		"workspace_id", workspaceID,
		"user_id", req.UserID,
		"role", role,
		"actor_id", userID,
	)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditMemberAdd,
		Detail:      fmt.Sprintf("user_id=%d role=%s", req.UserID, role),
	})
	return member, nil
}

// ChangeRole updates a member's role under the owner rules
func (s *memberService) ChangeRole(ctx context.Context, userID, workspaceID, targetUserID int64, req *services.ChangeRoleRequest) (*models.WorkspaceMember, error) {
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}

	actor, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionMemberManage)
	if err != nil {
		return nil, err
	}

	var target *models.WorkspaceMember
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		if target, err = s.memberRepo.Get(ctx, workspaceID, targetUserID); err != nil {
			return err
		}
		if err := auth.CheckOwnerChange(actor, target); err != nil {
			return err
		}
		if err := auth.CheckRoleGrant(actor, role); err != nil {
			return err
		}
		if target.IsOwner() && role != models.RoleOwner {
			if err := s.ensureAnotherOwner(ctx, workspaceID); err != nil {
				return err
			}
		}
		target.Role = role
		return s.memberRepo.UpdateRole(ctx, workspaceID, targetUserID, role)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member role changed",
		"workspace_id", workspaceID,
		"user_id", targetUserID,
		"role", role,
		"actor_id", userID,
	)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditMemberRoleChange,
		Detail:      fmt.Sprintf("user_id=%d role=%s", targetUserID, role),
	})
	return target, nil
}

// RemoveMember deletes a membership under the owner rules
func (s *memberService) RemoveMember(ctx context.Context, userID, workspaceID, targetUserID int64) error {
	actor, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionMemberManage)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		target, err := s.memberRepo.Get(ctx, workspaceID, targetUserID)
		if err != nil {
			return err
		}
		if err := auth.CheckOwnerChange(actor, target); err != nil {
			return err
		}
		if target.IsOwner() {
			if err := s.ensureAnotherOwner(ctx, workspaceID); err != nil {
				return err
			}
		}
		return s.memberRepo.Delete(ctx, workspaceID, targetUserID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("member removed", "workspace_id", workspaceID, "user_id", targetUserID, "actor_id", userID)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditMemberRemove,
		Detail:      fmt.Sprintf("user_id=%d", targetUserID),
	})
	return nil
}

// ensureAnotherOwner locks the owner rows and fails when only one is left.
// Concurrent removals serialize on the lock, so two co-owners cannot both go.
func (s *memberService) ensureAnotherOwner(ctx context.Context, workspaceID int64) error {
	owners, err := s.memberRepo.LockOwners(ctx, workspaceID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return domain.ErrLastOwner
	}
	return nil
}
