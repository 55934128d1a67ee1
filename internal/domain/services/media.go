package services

import (
	"context"

	"vaultspace/internal/domain/models"
)

// StoreMediaInput is the content and metadata of one upload
type StoreMediaInput struct {
	WorkspaceID int64
	UploaderID  int64
	Filename    string
	MimeType    string
	Content     []byte
	Description *string
	Tags        []string
}

// UpdateMediaRequest edits media metadata; nil fields are left unchanged
type UpdateMediaRequest struct {
	OriginalFilename *string   `json:"original_filename"`
	Description      *string   `json:"description"`
	Tags             *[]string `json:"tags"`
}

// ListMediaRequest carries the raw listing parameters
type ListMediaRequest struct {
	Page      int
	PageSize  int
	Filename  string
	Type      string
	SortOrder string
}

// MediaStore owns the lifecycle of encrypted media blobs and their rows.
// It performs no authorization; callers check roles first.
type MediaStore interface {
	// Store encrypts content, writes the blob, then records the row
	Store(ctx context.Context, in *StoreMediaInput) (*models.Media, error)

	// Retrieve reads and decrypts the blob of media
	Retrieve(ctx context.Context, media *models.Media) ([]byte, error)

	// Update edits metadata only; the blob is never touched
	Update(ctx context.Context, media *models.Media, req *UpdateMediaRequest) (*models.Media, error)

	// Delete removes the blob, then the row. A failed blob removal keeps the row.
	Delete(ctx context.Context, media *models.Media) error
}

// MediaFile is decrypted media content ready to send
type MediaFile struct {
	Media   *models.Media
	Content []byte
}

// MediaService is the authorized, audited surface over MediaStore
type MediaService interface {
	UploadMedia(ctx context.Context, userID int64, in *StoreMediaInput) (*models.Media, error)
	ListMedia(ctx context.Context, userID, workspaceID int64, req *ListMediaRequest) (*models.MediaPage, error)
	GetMedia(ctx context.Context, userID, workspaceID, mediaID int64) (*models.Media, error)
	DownloadMedia(ctx context.Context, userID, workspaceID, mediaID int64) (*MediaFile, error)
	UpdateMedia(ctx context.Context, userID, workspaceID, mediaID int64, req *UpdateMediaRequest) (*models.Media, error)
	DeleteMedia(ctx context.Context, userID, workspaceID, mediaID int64) error
}
