package workspace

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
	"vaultspace/internal/storage"
)

// workspaceService implements the WorkspaceService interface
type workspaceService struct {
	txManager     repositories.TransactionManager
	workspaceRepo repositories.WorkspaceRepository
	memberRepo    repositories.MemberRepository
	mediaRepo     repositories.MediaRepository
	blobs         storage.BlobStore
	guard         services.Authorizer
	audit         services.AuditSink
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	txManager repositories.TransactionManager,
	workspaceRepo repositories.WorkspaceRepository,
	memberRepo repositories.MemberRepository,
	mediaRepo repositories.MediaRepository,
	blobs storage.BlobStore,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.WorkspaceService {
	return &workspaceService{
		txManager:     txManager,
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		mediaRepo:     mediaRepo,
		blobs:         blobs,
		guard:         guard,
		audit:         audit,
		logger:        logger,
	}
}

// CreateWorkspace inserts the workspace and the creator's owner membership in one transaction
func (s *workspaceService) CreateWorkspace(ctx context.Context, userID int64, req *services.CreateWorkspaceRequest) (*models.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, validationError(err)
	}

	ws := &models.Workspace{Name: name}
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.workspaceRepo.Create(ctx, ws); err != nil {
			return err
		}
		return s.memberRepo.Create(ctx, &models.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        models.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "workspace_id", ws.ID, "user_id", userID)
	s.audit.Record(ctx, services.AuditEvent{WorkspaceID: ws.ID, ActorID: userID, Action: models.AuditWorkspaceCreate})
	return ws, nil
}

// ListWorkspaces returns the workspaces the caller belongs to
func (s *workspaceService) ListWorkspaces(ctx context.Context, userID int64) ([]models.Workspace, error) {
	return s.workspaceRepo.ListForUser(ctx, userID)
}

// GetWorkspace returns a workspace the caller belongs to
func (s *workspaceService) GetWorkspace(ctx context.Context, userID, workspaceID int64) (*models.Workspace, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.workspaceRepo.GetByID(ctx, workspaceID)
}

// UpdateWorkspace renames a workspace
func (s *workspaceService) UpdateWorkspace(ctx context.Context, userID, workspaceID int64, req *services.UpdateWorkspaceRequest) (*models.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceUpdate); err != nil {
		return nil, err
	}

	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	ws.Name = name
	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("workspace updated", "workspace_id", ws.ID, "user_id", userID)
	s.audit.Record(ctx, services.AuditEvent{WorkspaceID: ws.ID, ActorID: userID, Action: models.AuditWorkspaceUpdate, Detail: name})
	return ws, nil
}

// DeleteWorkspace removes the workspace; rows cascade in the database and
// blobs are removed afterwards on a best-effort basis.
func (s *workspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID int64) error {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceDelete); err != nil {
		return err
	}

	var paths []string
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		if paths, err = s.mediaRepo.ListStoredPaths(ctx, workspaceID); err != nil {
			return err
		}
		return s.workspaceRepo.Delete(ctx, workspaceID)
	})
	if err != nil {
		return err
	}

	cleanupCtx := context.WithoutCancel(ctx)
	for _, p := range paths {
		if err := s.blobs.Delete(cleanupCtx, p); err != nil && !errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.Error("failed to remove blob of deleted workspace",
				"workspace_id", workspaceID,
				"path", p,
				"error", err,
			)
		}
	}

	s.logger.Info("workspace deleted", "workspace_id", workspaceID, "user_id", userID, "blobs", len(paths))
	s.audit.Record(ctx, services.AuditEvent{WorkspaceID: workspaceID, ActorID: userID, Action: models.AuditWorkspaceDelete})
	return nil
}
