package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/services"
)

func TestBuildMediaFilter(t *testing.T) {
	tests := []struct {
		name    string
		req     services.ListMediaRequest
		want    models.MediaFilter
		wantErr bool
	}{
		{"defaults", services.ListMediaRequest{}, models.MediaFilter{WorkspaceID: 5, Page: 1, PageSize: 10}, false},
		{"ascending", services.ListMediaRequest{Page: 2, PageSize: 100, SortOrder: "ASC"}, models.MediaFilter{WorkspaceID: 5, Page: 2, PageSize: 100, SortAsc: true}, false},
		{"type and filename", services.ListMediaRequest{Type: "Image", Filename: " cat "}, models.MediaFilter{WorkspaceID: 5, Page: 1, PageSize: 10, TypePrefix: "image", Filename: "cat"}, false},
		{"negative page", services.ListMediaRequest{Page: -1}, models.MediaFilter{}, true},
		{"page size too large", services.ListMediaRequest{PageSize: 101}, models.MediaFilter{}, true},
		{"negative page size", services.ListMediaRequest{PageSize: -5}, models.MediaFilter{}, true},
		{"unknown type", services.ListMediaRequest{Type: "font"}, models.MediaFilter{}, true},
		{"unknown sort", services.ListMediaRequest{SortOrder: "sideways"}, models.MediaFilter{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildMediaFilter(5, &tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestListMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)
	f.members.put(ws, 2, models.RoleViewer)

	for i := range 12 {
		in := storeInput(ws, fmt.Sprintf("photo-%02d.png", i), []byte{byte(i)})
		in.MimeType = "image/png"
		_, err := f.mediaSvc.UploadMedia(ctx, 1, in)
		require.NoError(t, err)
	}
	in := storeInput(ws, "Contract.pdf", []byte("pdf"))
	in.MimeType = "application/pdf"
	_, err := f.mediaSvc.UploadMedia(ctx, 1, in)
	require.NoError(t, err)

	page, err := f.mediaSvc.ListMedia(ctx, 2, ws, &services.ListMediaRequest{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)
	assert.Len(t, page.Items, 3)

	page, err = f.mediaSvc.ListMedia(ctx, 2, ws, &services.ListMediaRequest{Type: "image", PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)

	page, err = f.mediaSvc.ListMedia(ctx, 2, ws, &services.ListMediaRequest{Filename: "contract"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Contract.pdf", page.Items[0].OriginalFilename)

	_, err = f.mediaSvc.ListMedia(ctx, 3, ws, &services.ListMediaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestMediaService_RoleGates(t *testing.T) {
	tests := []struct {
		role      models.Role
		canUpload bool
		canDelete bool
	}{
		{models.RoleOwner, true, true},
		{models.RoleAdmin, true, true},
		{models.RoleEditor, true, false},
		{models.RoleReviewer, false, false},
		{models.RoleViewer, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			ws := f.workspace(t, 1)
			f.members.put(ws, 2, tt.role)

			existing, err := f.mediaSvc.UploadMedia(ctx, 1, storeInput(ws, "seed.txt", []byte("seed")))
			require.NoError(t, err)

			_, err = f.mediaSvc.UploadMedia(ctx, 2, storeInput(ws, "new.txt", []byte("new")))
			if tt.canUpload {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}

			// every member can read
			file, err := f.mediaSvc.DownloadMedia(ctx, 2, ws, existing.ID)
			require.NoError(t, err)
			assert.Equal(t, []byte("seed"), file.Content)

			err = f.mediaSvc.DeleteMedia(ctx, 2, ws, existing.ID)
			if tt.canDelete {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestUploadMedia_AuditsAndStampsUploader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)
	f.members.put(ws, 4, models.RoleEditor)

	in := storeInput(ws, "a.txt", []byte("x"))
	in.UploaderID = 999
	media, err := f.mediaSvc.UploadMedia(ctx, 4, in)
	require.NoError(t, err)
	require.NotNil(t, media.UploadedBy)
	assert.Equal(t, int64(4), *media.UploadedBy)
	assert.True(t, f.audit.has(models.AuditMediaUpload))

	desc := "updated"
	_, err = f.mediaSvc.UpdateMedia(ctx, 4, ws, media.ID, &services.UpdateMediaRequest{Description: &desc})
	require.NoError(t, err)
	assert.True(t, f.audit.has(models.AuditMediaUpdate))
}

func TestMediaService_OtherWorkspaceIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	wsA := f.workspace(t, 1)
	wsB := f.workspace(t, 1)

	media, err := f.mediaSvc.UploadMedia(ctx, 1, storeInput(wsA, "a.txt", []byte("x")))
	require.NoError(t, err)

	_, err = f.mediaSvc.GetMedia(ctx, 1, wsB, media.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
