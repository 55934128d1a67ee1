package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
)

// commentService implements the CommentService interface
type commentService struct {
	commentRepo repositories.CommentRepository
	guard       services.Authorizer
	audit       services.AuditSink
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		guard:       guard,
		audit:       audit,
		logger:      logger,
	}
}

// CreateComment posts a comment. The target itself is not checked.
func (s *commentService) CreateComment(ctx context.Context, userID, workspaceID int64, req *services.CreateCommentRequest) (*models.Comment, error) {
	target, err := models.ParseCommentTarget(req.TargetType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.TargetID <= 0 {
		return nil, fmt.Errorf("%w: target_id is required", domain.ErrValidation)
	}
	body := strings.TrimSpace(req.Body)
	if body == "" || len([]rune(body)) > config.MaxCommentLength {
		return nil, fmt.Errorf("%w: body must be 1 to %d characters", domain.ErrValidation, config.MaxCommentLength)
	}

	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionCommentCreate); err != nil {
		return nil, err
	}

	author := userID
	comment := &models.Comment{
		WorkspaceID: workspaceID,
		AuthorID:    &author,
		TargetType:  target,
		TargetID:    req.TargetID,
		Body:        body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created", "comment_id", comment.ID, "workspace_id", workspaceID, "user_id", userID)
	return comment, nil
}

// ListComments lists comments, optionally for one target
func (s *commentService) ListComments(ctx context.Context, userID, workspaceID int64, req *services.ListCommentsRequest) ([]models.Comment, error) {
	filter := &models.CommentFilter{WorkspaceID: workspaceID, TargetID: req.TargetID}
	if req.TargetType != "" {
		target, err := models.ParseCommentTarget(req.TargetType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		filter.TargetType = target
	}

	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.commentRepo.List(ctx, filter)
}

// DeleteComment lets authors remove their own comments and moderators remove any
func (s *commentService) DeleteComment(ctx context.Context, userID, workspaceID, commentID int64) error {
	if _, err := s.guard.ResolveRole(ctx, userID, workspaceID); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, workspaceID, commentID)
	if err != nil {
		return err
	}

	isAuthor := comment.AuthorID != nil && *comment.AuthorID == userID
	if !isAuthor {
		if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionCommentModerate); err != nil {
			return err
		}
	}

	if err := s.commentRepo.Delete(ctx, workspaceID, commentID); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "workspace_id", workspaceID, "user_id", userID)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditCommentDelete,
		Detail:      fmt.Sprintf("comment_id=%d", commentID),
	})
	return nil
}
