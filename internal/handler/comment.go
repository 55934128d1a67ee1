package handler

import (
	"log/slog"
	"net/http"

	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	comments services.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logger,
	}
}

// CreateComment adds a comment to a document or media item
// POST /api/workspaces/{workspace_id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	var req services.CreateCommentRequest
	if !parseBody(w, r, &req) {
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), httputil.GetUserID(r), wsID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments lists comments, optionally for one target
// GET /api/workspaces/{workspace_id}/comments?target_type=document&target_id=1
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	targetID, err := httputil.QueryInt(r, "target_id")
	if err != nil {
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comments, err := h.comments.ListComments(r.Context(), httputil.GetUserID(r), wsID, &services.ListCommentsRequest{
		TargetType: r.URL.Query().Get("target_type"),
		TargetID:   int64(targetID),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}

// DeleteComment removes a comment
// DELETE /api/workspaces/{workspace_id}/comments/{comment_id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "comment_id")
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(r.Context(), httputil.GetUserID(r), wsID, commentID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
