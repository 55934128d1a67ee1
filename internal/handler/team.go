package handler

import (
	"log/slog"
	"net/http"

	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// TeamHandler handles team requests
type TeamHandler struct {
	teams  services.TeamService
	logger *slog.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams services.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teams:  teams,
		logger: logger,
	}
}

// CreateTeam creates a team owned by the caller
// POST /api/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTeamRequest
	if !parseBody(w, r, &req) {
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, team)
}

// ListTeams lists the caller's teams
// GET /api/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, teams)
}

// JoinTeam adds the caller to a team
// POST /api/teams/{team_id}/join
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}

	if err := h.teams.JoinTeam(r.Context(), httputil.GetUserID(r), teamID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTeamMembers lists a team's members
// GET /api/teams/{team_id}/members
func (h *TeamHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}

	members, err := h.teams.ListTeamMembers(r.Context(), httputil.GetUserID(r), teamID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AttachWorkspace links a workspace and syncs its members into the team
// POST /api/teams/{team_id}/workspaces/{workspace_id}
func (h *TeamHandler) AttachWorkspace(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}
	wsID, ok := pathID(w, r, "workspace_id")
	if !ok {
		return
	}

	sync, err := h.teams.AttachWorkspace(r.Context(), httputil.GetUserID(r), teamID, wsID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sync)
}
