package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   repositories.DocumentRepository
	mediaRepo repositories.MediaRepository
	store     services.MediaStore
	guard     services.Authorizer
	audit     services.AuditSink
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	mediaRepo repositories.MediaRepository,
	store services.MediaStore,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		mediaRepo: mediaRepo,
		store:     store,
		guard:     guard,
		audit:     audit,
		logger:    logger,
	}
}

// CreateDocument creates a text document or a document backed by workspace media
func (s *documentService) CreateDocument(ctx context.Context, userID, workspaceID int64, req *services.CreateDocumentRequest) (*models.Document, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, validationError(err)
	}
	content := ""
	if req.Content != nil {
		content = *req.Content
	}
	if strings.TrimSpace(content) == "" && req.MediaID == nil {
		return nil, fmt.Errorf("%w: either content or media_id is required", domain.ErrValidation)
	}

	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionDocumentCreate); err != nil {
		return nil, err
	}
	if req.MediaID != nil {
		if err := s.checkMediaInWorkspace(ctx, workspaceID, *req.MediaID); err != nil {
			return nil, err
		}
	}

	doc := &models.Document{
		WorkspaceID: workspaceID,
		Title:       title,
		Content:     content,
		MediaID:     req.MediaID,
		DocType:     resolveDocType(req.MediaID, req.DocType),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"workspace_id", workspaceID,
		"doc_type", doc.DocType,
		"user_id", userID,
	)
	return doc, nil
}

// ListDocuments lists a workspace's documents
func (s *documentService) ListDocuments(ctx context.Context, userID, workspaceID int64) ([]models.Document, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.docRepo.List(ctx, workspaceID)
}

// GetDocument retrieves one document
func (s *documentService) GetDocument(ctx context.Context, userID, workspaceID, documentID int64) (*models.Document, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionWorkspaceRead); err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, workspaceID, documentID)
}

// UpdateDocument applies a partial update and bumps the version.
// Content is kept when the request carries none.
func (s *documentService) UpdateDocument(ctx context.Context, userID, workspaceID, documentID int64, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionDocumentUpdate); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, workspaceID, documentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, validationError(err)
		}
		doc.Title = title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.MediaID != nil {
		if err := s.checkMediaInWorkspace(ctx, workspaceID, *req.MediaID); err != nil {
			return nil, err
		}
		doc.MediaID = req.MediaID
	}
	if req.MediaID != nil || req.DocType != nil {
		requested := doc.DocType
		if req.DocType != nil {
			requested = *req.DocType
		}
		doc.DocType = resolveDocType(doc.MediaID, requested)
	}
	if strings.TrimSpace(doc.Content) == "" && doc.MediaID == nil {
		return nil, fmt.Errorf("%w: either content or media_id is required", domain.ErrValidation)
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"document_id", doc.ID,
		"workspace_id", workspaceID,
		"version", doc.Version,
		"user_id", userID,
	)
	return doc, nil
}

// DeleteDocument removes a document for an owner or admin
func (s *documentService) DeleteDocument(ctx context.Context, userID, workspaceID, documentID int64) error {
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionDocumentDelete); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, workspaceID, documentID); err != nil {
		return err
	}

	s.logger.Info("document deleted", "document_id", documentID, "workspace_id", workspaceID, "user_id", userID)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditDocumentDelete,
		Detail:      fmt.Sprintf("document_id=%d", documentID),
	})
	return nil
}

// GetDocumentFile decrypts the media behind a file-backed document
func (s *documentService) GetDocumentFile(ctx context.Context, userID, workspaceID, documentID int64) (*services.MediaFile, error) {
	doc, err := s.GetDocument(ctx, userID, workspaceID, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.IsFileBacked() {
		return nil, fmt.Errorf("%w: document %d has no file", domain.ErrBadRequest, documentID)
	}

	media, err := s.mediaRepo.GetByID(ctx, workspaceID, *doc.MediaID)
	if err != nil {
		return nil, err
	}
	content, err := s.store.Retrieve(ctx, media)
	if err != nil {
		return nil, err
	}
	return &services.MediaFile{Media: media, Content: content}, nil
}

// checkMediaInWorkspace rejects media ids from other workspaces
func (s *documentService) checkMediaInWorkspace(ctx context.Context, workspaceID, mediaID int64) error {
	if _, err := s.mediaRepo.GetByID(ctx, workspaceID, mediaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: media %d does not belong to this workspace", domain.ErrValidation, mediaID)
		}
		return err
	}
	return nil
}

// resolveDocType is "file" for file-backed documents, else the requested type or "text"
func resolveDocType(mediaID *int64, requested string) string {
	if mediaID != nil {
		return models.DocTypeFile
	}
	requested = strings.TrimSpace(requested)
	if requested == "" || requested == models.DocTypeFile {
		return models.DocTypeText
	}
	return requested
}

func validateTitle(title string) error {
	return validation.Validate(title,
		validation.Required,
		validation.RuneLength(1, config.MaxTitleLength),
	)
}
