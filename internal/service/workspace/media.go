package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
)

// mediaService implements the MediaService interface
type mediaService struct {
	store     services.MediaStore
	mediaRepo repositories.MediaRepository
	guard     services.Authorizer
	audit     services.AuditSink
	logger    *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	store services.MediaStore,
	mediaRepo repositories.MediaRepository,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.MediaService {
	return &mediaService{
		store:     store,
		mediaRepo: mediaRepo,
		guard:     guard,
		audit:     audit,
		logger:    logger,
	}
}

// UploadMedia stores a new file for an editor of the workspace
func (s *mediaService) UploadMedia(ctx context.Context, userID int64, in *services.StoreMediaInput) (*models.Media, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, in.WorkspaceID, policy.ActionMediaUpload); err != nil {
		return nil, err
	}

	in.UploaderID = userID
	media, err := s.store.Store(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: in.WorkspaceID,
		ActorID:     userID,
		Action:      models.AuditMediaUpload,
		Detail:      fmt.Sprintf("media_id=%d filename=%s", media.ID, media.OriginalFilename),
	})
	return media, nil
}

// ListMedia returns one page of a workspace's media
func (s *mediaService) ListMedia(ctx context.Context, userID, workspaceID int64, req *services.ListMediaRequest) (*models.MediaPage, error) {
	filter, err := buildMediaFilter(workspaceID, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}

	items, total, err := s.mediaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &models.MediaPage{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
		Items:    items,
	}, nil
}

// buildMediaFilter applies defaults and rejects out-of-range parameters.
// An unknown type prefix is a validation error rather than a silent no-op.
func buildMediaFilter(workspaceID int64, req *services.ListMediaRequest) (*models.MediaFilter, error) {
	filter := &models.MediaFilter{
		WorkspaceID: workspaceID,
		Page:        req.Page,
		PageSize:    req.PageSize,
		Filename:    strings.TrimSpace(req.Filename),
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
	}
	if filter.PageSize == 0 {
		filter.PageSize = config.DefaultPageSize
	}
	if filter.PageSize < 1 || filter.PageSize > config.MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d", domain.ErrValidation, config.MaxPageSize)
	}

	if t := strings.ToLower(strings.TrimSpace(req.Type)); t != "" {
		if !slices.Contains(models.MediaTypePrefixes, t) {
			return nil, fmt.Errorf("%w: type must be one of %s", domain.ErrValidation, strings.Join(models.MediaTypePrefixes, ", "))
		}
		filter.TypePrefix = t
	}

	switch strings.ToLower(strings.TrimSpace(req.SortOrder)) {
	case "", "desc":
	case "asc":
		filter.SortAsc = true
	default:
		return nil, fmt.Errorf("%w: sort_order must be asc or desc", domain.ErrValidation)
	}
	return filter, nil
}

// GetMedia returns media metadata to any member
func (s *mediaService) GetMedia(ctx context.Context, userID, workspaceID, mediaID int64) (*models.Media, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.mediaRepo.GetByID(ctx, workspaceID, mediaID)
}

// DownloadMedia returns decrypted content to any member
func (s *mediaService) DownloadMedia(ctx context.Context, userID, workspaceID, mediaID int64) (*services.MediaFile, error) {
	media, err := s.GetMedia(ctx, userID, workspaceID, mediaID)
	if err != nil {
		return nil, err
	}
	content, err := s.store.Retrieve(ctx, media)
	if err != nil {
		return nil, err
	}
	return &services.MediaFile{Media: media, Content: content}, nil
}

// UpdateMedia edits metadata for an editor of the workspace
func (s *mediaService) UpdateMedia(ctx context.Context, userID, workspaceID, mediaID int64, req *services.UpdateMediaRequest) (*models.Media, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionMediaUpdate); err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.GetByID(ctx, workspaceID, mediaID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, media, req)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditMediaUpdate,
		Detail:      fmt.Sprintf("media_id=%d", mediaID),
	})
	return updated, nil
}

// DeleteMedia removes media for an owner or admin
func (s *mediaService) DeleteMedia(ctx context.Context, userID, workspaceID, mediaID int64) error {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionMediaDelete); err != nil {
		return err
	}
	media, err := s.mediaRepo.GetByID(ctx, workspaceID, mediaID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, media); err != nil {
		return err
	}

	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditMediaDelete,
		Detail:      fmt.Sprintf("media_id=%d filename=%s", media.ID, media.OriginalFilename),
	})
	return nil
}
