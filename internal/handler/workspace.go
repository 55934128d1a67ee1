package handler

import (
	"log/slog"
	"net/http"

	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// WorkspaceHandler handles workspace and membership requests
type WorkspaceHandler struct {
	workspaces services.WorkspaceService
	members    services.MemberService
	logger     *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaces services.WorkspaceService, members services.MemberService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
		members:    members,
		logger:     logger,
	}
}

// CreateWorkspace creates a workspace owned by the caller
// POST /api/workspaces
func (h *WorkspaceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req services.CreateWorkspaceRequest
	if !parseBody(w, r, &req) {
		return
	}

	ws, err := h.workspaces.CreateWorkspace(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, ws)
}

// ListWorkspaces lists the caller's workspaces
// GET /api/workspaces
func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := h.workspaces.ListWorkspaces(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// GetWorkspace retrieves a workspace
// GET /api/workspaces/{workspace_id}
func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	ws, err := h.workspaces.GetWorkspace(r.Context(), httputil.GetUserID(r), wsID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ws)
}

// UpdateWorkspace renames a workspace
// PATCH /api/workspaces/{workspace_id}
func (h *WorkspaceHandler) UpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	var req services.UpdateWorkspaceRequest
	if !parseBody(w, r, &req) {
		return
	}

	ws, err := h.workspaces.UpdateWorkspace(r.Context(), httputil.GetUserID(r), wsID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ws)
}

// DeleteWorkspace deletes a workspace and everything in it
// DELETE /api/workspaces/{workspace_id}
func (h *WorkspaceHandler) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	if err := h.workspaces.DeleteWorkspace(r.Context(), httputil.GetUserID(r), wsID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers lists workspace members
// GET /api/workspaces/{workspace_id}/members
func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	members, err := h.members.ListMembers(r.Context(), httputil.GetUserID(r), wsID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AddMember invites a user
// POST /api/workspaces/{workspace_id}/members
func (h *WorkspaceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	var req services.AddMemberRequest
	if !parseBody(w, r, &req) {
		return
	}

	member, err := h.members.AddMember(r.Context(), httputil.GetUserID(r), wsID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

// ChangeRole changes a member's role
// PATCH /api/workspaces/{workspace_id}/members/{user_id}
func (h *WorkspaceHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	targetID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	var req services.ChangeRoleRequest
	if !parseBody(w, r, &req) {
		return
	}

	member, err := h.members.ChangeRole(r.Context(), httputil.GetUserID(r), wsID, targetID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// RemoveMember removes a member
// DELETE /api/workspaces/{workspace_id}/members/{user_id}
func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}
	targetID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.members.RemoveMember(r.Context(), httputil.GetUserID(r), wsID, targetID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
