package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// LocalStore keeps blobs as files in a single flat directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve files dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}
	return &LocalStore{dir: abs}, nil
}

// Locate implements BlobStore
func (s *LocalStore) Locate(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// contained rejects paths outside the store directory
func (s *LocalStore) contained(path string) (string, error) {
	clean := filepath.Clean(path)
	rel, err := filepath.Rel(s.dir, clean)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return "", fmt.Errorf("path %q is outside the blob directory", path)
	}
	return clean, nil
}

// resolve maps a stored path onto the current directory by its blob name,
// so rows written under an earlier FILES_DIR still find their blobs after
// the directory moves. The result never leaves the store directory.
func (s *LocalStore) resolve(path string) (string, error) {
	name := filepath.Base(filepath.Clean(path))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("path %q names no blob", path)
	}
	return filepath.Join(s.dir, name), nil
}

// Put writes data through a temp file and rename so readers never see a partial blob
func (s *LocalStore) Put(ctx context.Context, path string, data []byte) error {
	path, err := s.contained(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("blob %s already exists", filepath.Base(path))
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Get implements BlobStore
func (s *LocalStore) Get(ctx context.Context, path string) ([]byte, error) {
	path, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Delete implements BlobStore
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	path, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
