package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/services"
)

func ptr[T any](v T) *T { return &v }

func TestCreateDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)
	other := f.workspace(t, 1)

	media, err := f.mediaSvc.UploadMedia(ctx, 1, storeInput(ws, "scan.pdf", []byte("%PDF")))
	require.NoError(t, err)
	foreign, err := f.mediaSvc.UploadMedia(ctx, 1, storeInput(other, "scan.pdf", []byte("%PDF")))
	require.NoError(t, err)

	tests := []struct {
		name     string
		req      services.CreateDocumentRequest
		wantType string
		wantErr  error
	}{
		{"text", services.CreateDocumentRequest{Title: "Notes", Content: ptr("hello")}, models.DocTypeText, nil},
		{"custom type", services.CreateDocumentRequest{Title: "Notes", Content: ptr("# hi"), DocType: "markdown"}, "markdown", nil},
		{"file backed", services.CreateDocumentRequest{Title: "Scan", MediaID: &media.ID, DocType: "text"}, models.DocTypeFile, nil},
		{"no body", services.CreateDocumentRequest{Title: "Empty"}, "", domain.ErrValidation},
		{"blank content", services.CreateDocumentRequest{Title: "Empty", Content: ptr("   ")}, "", domain.ErrValidation},
		{"missing title", services.CreateDocumentRequest{Content: ptr("x")}, "", domain.ErrValidation},
		{"foreign media", services.CreateDocumentRequest{Title: "Scan", MediaID: &foreign.ID}, "", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := f.docSvc.CreateDocument(ctx, 1, ws, &tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, doc.DocType)
			assert.Equal(t, 1, doc.Version)
		})
	}
}

func TestUpdateDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)
	f.members.put(ws, 2, models.RoleEditor)
	f.members.put(ws, 3, models.RoleViewer)

	doc, err := f.docSvc.CreateDocument(ctx, 2, ws, &services.CreateDocumentRequest{Title: "Draft", Content: ptr("v1")})
	require.NoError(t, err)

	updated, err := f.docSvc.UpdateDocument(ctx, 2, ws, doc.ID, &services.UpdateDocumentRequest{Title: ptr("Final")})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "v1", updated.Content)
	assert.Equal(t, 2, updated.Version)

	_, err = f.docSvc.UpdateDocument(ctx, 2, ws, doc.ID, &services.UpdateDocumentRequest{Content: ptr("")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.docSvc.UpdateDocument(ctx, 3, ws, doc.ID, &services.UpdateDocumentRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	got, err := f.docSvc.GetDocument(ctx, 3, ws, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)
	f.members.put(ws, 2, models.RoleEditor)

	doc, err := f.docSvc.CreateDocument(ctx, 2, ws, &services.CreateDocumentRequest{Title: "Draft", Content: ptr("v1")})
	require.NoError(t, err)

	require.ErrorIs(t, f.docSvc.DeleteDocument(ctx, 2, ws, doc.ID), domain.ErrForbidden)
	require.NoError(t, f.docSvc.DeleteDocument(ctx, 1, ws, doc.ID))
	assert.True(t, f.audit.has(models.AuditDocumentDelete))

	docs, err := f.docSvc.ListDocuments(ctx, 1, ws)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGetDocumentFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.workspace(t, 1)

	in := storeInput(ws, "scan.pdf", []byte("%PDF-1.7 body"))
	in.MimeType = "application/pdf"
	media, err := f.mediaSvc.UploadMedia(ctx, 1, in)
	require.NoError(t, err)

	fileDoc, err := f.docSvc.CreateDocument(ctx, 1, ws, &services.CreateDocumentRequest{Title: "Scan", MediaID: &media.ID})
	require.NoError(t, err)
	textDoc, err := f.docSvc.CreateDocument(ctx, 1, ws, &services.CreateDocumentRequest{Title: "Notes", Content: ptr("x")})
	require.NoError(t, err)

	file, err := f.docSvc.GetDocumentFile(ctx, 1, ws, fileDoc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 body"), file.Content)
	assert.Equal(t, "application/pdf", file.Media.MimeType)

	_, err = f.docSvc.GetDocumentFile(ctx, 1, ws, textDoc.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
