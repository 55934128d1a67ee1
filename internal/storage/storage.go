package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrBlobNotFound is returned when a path holds no blob
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a flat, write-once byte store addressed by opaque paths.
// It never sees plaintext; callers encrypt before Put.
type BlobStore interface {
	// Locate returns the path a blob named name would be stored at
	Locate(name string) string

	// Put writes data at path. The write is all-or-nothing.
	Put(ctx context.Context, path string, data []byte) error

	// Get reads the blob at path, or returns ErrBlobNotFound
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the blob at path, or returns ErrBlobNotFound
	Delete(ctx context.Context, path string) error
}

// BlobExt marks stored blobs as encrypted
const BlobExt = ".enc"

// NewBlobName returns a random storage name unrelated to any user input
func NewBlobName() string {
	return uuid.NewString() + BlobExt
}
