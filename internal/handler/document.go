package handler

import (
	"log/slog"
	"net/http"

	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// DocumentHandler handles document requests
type DocumentHandler struct {
	docs   services.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:   docs,
		logger: logger,
	}
}

// CreateDocument creates a document
// POST /api/workspaces/{workspace_id}/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	var req services.CreateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}

	doc, err := h.docs.CreateDocument(r.Context(), httputil.GetUserID(r), wsID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments lists a workspace's documents
// GET /api/workspaces/{workspace_id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	docs, err := h.docs.ListDocuments(r.Context(), httputil.GetUserID(r), wsID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument retrieves a document
// GET /api/workspaces/{workspace_id}/documents/{doc_id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	docID, ok := pathID(w, r, "doc_id")
	if !ok {
		return
	}

	doc, err := h.docs.GetDocument(r.Context(), httputil.GetUserID(r), wsID, docID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument updates a document
// PUT /api/workspaces/{workspace_id}/documents/{doc_id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	docID, ok := pathID(w, r, "doc_id")
	if !ok {
		return
	}
	var req services.UpdateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}

	doc, err := h.docs.UpdateDocument(r.Context(), httputil.GetUserID(r), wsID, docID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document
// DELETE /api/workspaces/{workspace_id}/documents/{doc_id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	docID, ok := pathID(w, r, "doc_id")
	if !ok {
		return
	}

	if err := h.docs.DeleteDocument(r.Context(), httputil.GetUserID(r), wsID, docID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDocumentFile downloads the file behind a file-backed document
// GET /api/workspaces/{workspace_id}/documents/{doc_id}/file
func (h *DocumentHandler) GetDocumentFile(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	docID, ok := pathID(w, r, "doc_id")
	if !ok {
		return
	}

	file, err := h.docs.GetDocumentFile(r.Context(), httputil.GetUserID(r), wsID, docID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondFile(w, file.Media.OriginalFilename, file.Media.MimeType, file.Content)
}
