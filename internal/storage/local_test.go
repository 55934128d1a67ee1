package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "files"))
	require.NoError(t, err)

	name := NewBlobName()
	assert.True(t, strings.HasSuffix(name, BlobExt))

	path := store.Locate(name)
	require.NoError(t, store.Put(ctx, path, []byte("ciphertext")))

	// write-once
	assert.Error(t, store.Put(ctx, path, []byte("again")))

	data, err := store.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), data)

	require.NoError(t, store.Delete(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = store.Get(ctx, path)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.ErrorIs(t, store.Delete(ctx, path), ErrBlobNotFound)
}

func TestLocalStore_RejectsEscapes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "files"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "outside.enc")
	assert.Error(t, store.Put(ctx, outside, []byte("x")))

	// reads stay inside the directory even for a path that points out of it
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))
	_, err = store.Get(ctx, store.Locate("")+"/../outside.enc")
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.ErrorIs(t, store.Delete(ctx, outside), ErrBlobNotFound)
	_, err = os.Stat(outside)
	assert.NoError(t, err)

	_, err = store.Get(ctx, string(filepath.Separator))
	assert.Error(t, err)

	// Locate strips directories from names
	assert.Equal(t, store.Locate("evil.enc"), store.Locate("../../evil.enc"))
}

func TestLocalStore_DirectoryMoved(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	oldDir := filepath.Join(root, "old")
	store, err := NewLocalStore(oldDir)
	require.NoError(t, err)

	path := store.Locate(NewBlobName())
	require.NoError(t, store.Put(ctx, path, []byte("ciphertext")))

	newDir := filepath.Join(root, "new")
	require.NoError(t, os.Rename(oldDir, newDir))
	moved, err := NewLocalStore(newDir)
	require.NoError(t, err)

	// the stored path still names the old directory
	data, err := moved.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), data)

	require.NoError(t, moved.Delete(ctx, path))
	_, err = moved.Get(ctx, path)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestNewBlobName_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := NewBlobName()
		assert.False(t, seen[n])
		seen[n] = true
	}
}
