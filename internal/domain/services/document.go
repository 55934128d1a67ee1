package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// CreateDocumentRequest creates a text or file-backed document.
// At least one of Content (non-empty) or MediaID is required.
type CreateDocumentRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
	MediaID *int64  `json:"media_id"`
	DocType string  `json:"doc_type"`
}

// UpdateDocumentRequest is a partial update; nil fields keep their value
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	MediaID *int64  `json:"media_id"`
	DocType *string `json:"doc_type"`
}

// DocumentService defines business logic operations for documents
type DocumentService interface {
	CreateDocument(ctx context.Context, userID, workspaceID int64, req *CreateDocumentRequest) (*models.Document, error)
	ListDocuments(ctx context.Context, userID, workspaceID int64) ([]models.Document, error)
	GetDocument(ctx context.Context, userID, workspaceID, documentID int64) (*models.Document, error)
	UpdateDocument(ctx context.Context, userID, workspaceID, documentID int64, req *UpdateDocumentRequest) (*models.Document, error)
	DeleteDocument(ctx context.Context, userID, workspaceID, documentID int64) error

	// GetDocumentFile returns the decrypted media behind a file-backed document
	GetDocumentFile(ctx context.Context, userID, workspaceID, documentID int64) (*MediaFile, error)
}
