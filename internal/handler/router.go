package handler

import "net/http"

// PublicPaths are served without a bearer token
var PublicPaths = []string{"/health", "/api/auth/register", "/api/auth/token"}

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Workspace *WorkspaceHandler
	Media     *MediaHandler
	Documents *DocumentHandler
	Comments  *CommentHandler
	Teams     *TeamHandler
}

// Routes registers all routes on a new mux (Go 1.22+ patterns)
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/token", h.Auth.Login)

	// Profile
	mux.HandleFunc("GET /api/users/me", h.Users.GetMe)
	mux.HandleFunc("PATCH /api/users/me", h.Users.UpdateMe)

	// Workspaces and members
	mux.HandleFunc("POST /api/workspaces", h.Workspace.CreateWorkspace)
	mux.HandleFunc("GET /api/workspaces", h.Workspace.ListWorkspaces)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}", h.Workspace.GetWorkspace)
	mux.HandleFunc("PUT /api/workspaces/{workspace_id}", h.Workspace.UpdateWorkspace)
	mux.HandleFunc("DELETE /api/workspaces/{workspace_id}", h.Workspace.DeleteWorkspace)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/members", h.Workspace.ListMembers)
	mux.HandleFunc("POST /api/workspaces/{workspace_id}/members", h.Workspace.AddMember)
	mux.HandleFunc("PUT /api/workspaces/{workspace_id}/members/{user_id}", h.Workspace.ChangeRole)
	mux.HandleFunc("DELETE /api/workspaces/{workspace_id}/members/{user_id}", h.Workspace.RemoveMember)

	// Media
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/media", h.Media.ListMedia)
	mux.HandleFunc("POST /api/workspaces/{workspace_id}/media/upload", h.Media.UploadMedia)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/media/{media_id}", h.Media.GetMedia)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/media/{media_id}/download", h.Media.DownloadMedia)
	mux.HandleFunc("PUT /api/workspaces/{workspace_id}/media/{media_id}", h.Media.UpdateMedia)
	mux.HandleFunc("DELETE /api/workspaces/{workspace_id}/media/{media_id}", h.Media.DeleteMedia)

	// Documents
	mux.HandleFunc("POST /api/workspaces/{workspace_id}/documents", h.Documents.CreateDocument)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/documents", h.Documents.ListDocuments)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/documents/{doc_id}", h.Documents.GetDocument)
	mux.HandleFunc("PUT /api/workspaces/{workspace_id}/documents/{doc_id}", h.Documents.UpdateDocument)
	mux.HandleFunc("DELETE /api/workspaces/{workspace_id}/documents/{doc_id}", h.Documents.DeleteDocument)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/documents/{doc_id}/file", h.Documents.GetDocumentFile)

	// Comments
	mux.HandleFunc("POST /api/workspaces/{workspace_id}/comments", h.Comments.CreateComment)
	mux.HandleFunc("GET /api/workspaces/{workspace_id}/comments", h.Comments.ListComments)
	mux.HandleFunc("DELETE /api/workspaces/{workspace_id}/comments/{comment_id}", h.Comments.DeleteComment)

	// Teams
	mux.HandleFunc("POST /api/teams", h.Teams.CreateTeam)
	mux.HandleFunc("GET /api/teams", h.Teams.ListTeams)
	mux.HandleFunc("POST /api/teams/{team_id}/join", h.Teams.JoinTeam)
	mux.HandleFunc("GET /api/teams/{team_id}/members", h.Teams.ListTeamMembers)
	mux.HandleFunc("POST /api/teams/{team_id}/workspaces/{workspace_id}", h.Teams.AttachWorkspace)

	return mux
}
