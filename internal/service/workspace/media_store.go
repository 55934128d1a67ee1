package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/storage"
)

const defaultMimeType = "application/octet-stream"

// mediaStore implements MediaStore. Plaintext exists only in memory: content
// is sealed before the blob write and opened after the blob read.
type mediaStore struct {
	txManager repositories.TransactionManager
	mediaRepo repositories.MediaRepository
	blobs     storage.BlobStore
	cipher    *storage.Cipher
	logger    *slog.Logger
}

// NewMediaStore creates the encrypted media store
func NewMediaStore(
	txManager repositories.TransactionManager,
	mediaRepo repositories.MediaRepository,
	blobs storage.BlobStore,
	cipher *storage.Cipher,
	logger *slog.Logger,
) services.MediaStore {
	return &mediaStore{
		txManager: txManager,
		mediaRepo: mediaRepo,
		blobs:     blobs,
		cipher:    cipher,
		logger:    logger,
	}
}

// Store writes the sealed blob first and the row second. If the row cannot
// be written the blob is removed again.
func (s *mediaStore) Store(ctx context.Context, in *services.StoreMediaInput) (*models.Media, error) {
	if len(in.Content) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	filename := strings.TrimSpace(in.Filename)
	if err := validateFilename(filename); err != nil {
		return nil, validationError(err)
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, validationError(err)
	}
	if err := validateTags(in.Tags); err != nil {
		return nil, validationError(err)
	}

	// Checked before any blob is written so a duplicate leaves nothing behind
	exists, err := s.mediaRepo.FilenameExists(ctx, in.WorkspaceID, filename)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("file '%s' already exists in this workspace", filename),
			ResourceType: "media",
		}
	}

	sealed, err := s.cipher.Seal(in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	name := storage.NewBlobName()
	path := s.blobs.Locate(name)
	if err := s.blobs.Put(ctx, path, sealed); err != nil {
		s.logger.Error("failed to write media blob", "workspace_id", in.WorkspaceID, "error", err)
		return nil, fmt.Errorf("%w: write blob: %v", domain.ErrStorage, err)
	}

	mimeType := strings.TrimSpace(in.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	media := &models.Media{
		WorkspaceID:      in.WorkspaceID,
		OriginalFilename: filename,
		StoredFilename:   name,
		StoredPath:       path,
		MimeType:         mimeType,
		SizeBytes:        int64(len(sealed)),
		Description:      in.Description,
		Tags:             cleanTags(in.Tags),
	}
	if in.UploaderID != 0 {
		uploader := in.UploaderID
		media.UploadedBy = &uploader
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), path); delErr != nil {
			s.logger.Error("failed to remove blob after insert failure", "path", path, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("media stored",
		"media_id", media.ID,
		"workspace_id", media.WorkspaceID,
		"size_bytes", media.SizeBytes,
	)
	return media, nil
}

// Retrieve reads and decrypts a blob
func (s *mediaStore) Retrieve(ctx context.Context, media *models.Media) ([]byte, error) {
	sealed, err := s.blobs.Get(ctx, media.StoredPath)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.Error("stored file missing", "media_id", media.ID, "workspace_id", media.WorkspaceID)
			return nil, fmt.Errorf("media %d: %w", media.ID, domain.ErrStorageMissing)
		}
		return nil, fmt.Errorf("%w: read blob: %v", domain.ErrStorage, err)
	}

	plaintext, err := s.cipher.Open(sealed)
	if err != nil {
		s.logger.Error("media decryption failed", "media_id", media.ID, "workspace_id", media.WorkspaceID)
		return nil, fmt.Errorf("media %d: %w", media.ID, err)
	}
	return plaintext, nil
}

// Update edits filename, description and tags. The blob is not touched.
func (s *mediaStore) Update(ctx context.Context, media *models.Media, req *services.UpdateMediaRequest) (*models.Media, error) {
	updated := *media
	if req.OriginalFilename != nil {
		filename := strings.TrimSpace(*req.OriginalFilename)
		if err := validateFilename(filename); err != nil {
			return nil, validationError(err)
		}
		updated.OriginalFilename = filename
	}
	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return nil, validationError(err)
		}
		updated.Description = req.Description
	}
	if req.Tags != nil {
		if err := validateTags(*req.Tags); err != nil {
			return nil, validationError(err)
		}
		updated.Tags = cleanTags(*req.Tags)
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.mediaRepo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("media updated", "media_id", updated.ID, "workspace_id", updated.WorkspaceID)
	return &updated, nil
}

// Delete removes the blob and then the row. When the blob cannot be removed
// the row is kept so it never points at content that is gone. A blob that
// is already missing does not block removing the row.
func (s *mediaStore) Delete(ctx context.Context, media *models.Media) error {
	if err := s.blobs.Delete(ctx, media.StoredPath); err != nil {
		if !errors.Is(err, storage.ErrBlobNotFound) {
			s.logger.Error("failed to remove media blob", "media_id", media.ID, "error", err)
			return fmt.Errorf("%w: remove blob: %v", domain.ErrStorage, err)
		}
		s.logger.Warn("media blob already missing", "media_id", media.ID)
	}

	if err := s.mediaRepo.Delete(ctx, media.WorkspaceID, media.ID); err != nil {
		return err
	}

	s.logger.Info("media deleted", "media_id", media.ID, "workspace_id", media.WorkspaceID)
	return nil
}

func cleanTags(tags []string) []string {
	return models.SplitTags(models.JoinTags(tags))
}
