package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// multipartMemory is how much of an upload form is kept in memory before
// spilling to temp files
const multipartMemory = 8 << 20

// MediaHandler handles media requests
type MediaHandler struct {
	media          services.MediaService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media services.MediaService, maxUploadBytes int64, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:          media,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadMedia stores a multipart upload. Fields: file, description, tags (comma separated).
// POST /api/workspaces/{workspace_id}/media/upload
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	// Form overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(content)
	}

	in := &services.StoreMediaInput{
		WorkspaceID: wsID,
		Filename:    header.Filename,
		MimeType:    mimeType,
		Content:     content,
		Tags:        splitTagField(r.FormValue("tags")),
	}
	if desc := r.FormValue("description"); desc != "" {
		in.Description = &desc
	}

	media, err := h.media.UploadMedia(r.Context(), httputil.GetUserID(r), in)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, media)
}

// ListMedia lists media with paging, filters and sort order
// GET /api/workspaces/{workspace_id}/media
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	page, err := httputil.QueryInt(r, "page")
	if err != nil {
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	pageSize, err := httputil.QueryInt(r, "page_size")
	if err != nil {
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	q := r.URL.Query()
	result, err := h.media.ListMedia(r.Context(), httputil.GetUserID(r), wsID, &services.ListMediaRequest{
		Page:      page,
		PageSize:  pageSize,
		Filename:  q.Get("filename"),
		Type:      q.Get("type"),
		SortOrder: q.Get("sort_order"),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetMedia returns media metadata
// GET /api/workspaces/{workspace_id}/media/{media_id}
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	mediaID, ok := pathID(w, r, "media_id")
	if !ok {
		return
	}

	media, err := h.media.GetMedia(r.Context(), httputil.GetUserID(r), wsID, mediaID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, media)
}

// DownloadMedia returns the decrypted file as an attachment
// GET /api/workspaces/{workspace_id}/media/{media_id}/download
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	mediaID, ok := pathID(w, r, "media_id")
	if !ok {
		return
	}

	file, err := h.media.DownloadMedia(r.Context(), httputil.GetUserID(r), wsID, mediaID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondFile(w, file.Media.OriginalFilename, file.Media.MimeType, file.Content)
}

// UpdateMedia edits media metadata
// PUT /api/workspaces/{workspace_id}/media/{media_id}
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	mediaID, ok := pathID(w, r, "media_id")
	if !ok {
		return
	}
	var req services.UpdateMediaRequest
	if !parseBody(w, r, &req) {
		return
	}

	media, err := h.media.UpdateMedia(r.Context(), httputil.GetUserID(r), wsID, mediaID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, media)
}

// DeleteMedia removes the file and its metadata
// DELETE /api/workspaces/{workspace_id}/media/{media_id}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	mediaID, ok := pathID(w, r, "media_id")
	if !ok {
		return
	}

	if err := h.media.DeleteMedia(r.Context(), httputil.GetUserID(r), wsID, mediaID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// splitTagField parses the comma separated form field
func splitTagField(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, models.TagSeparator)
}
