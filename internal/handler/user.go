package handler

import (
	"log/slog"
	"net/http"

	"vaultspace/internal/domain/services"
	"vaultspace/internal/httputil"
)

// UserHandler handles the caller's own profile
type UserHandler struct {
	service services.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// updateProfileBody distinguishes absent fields from explicit nulls
type updateProfileBody struct {
	Username    httputil.OptionalString `json:"username"`
	FirstName   httputil.OptionalString `json:"first_name"`
	LastName    httputil.OptionalString `json:"last_name"`
	AvatarURL   httputil.OptionalString `json:"avatar_url"`
	DateOfBirth httputil.OptionalString `json:"date_of_birth"`
	Bio         httputil.OptionalString `json:"bio"`
}

// toRequest maps null to "" (clear) and absent to nil (keep)
func (b *updateProfileBody) toRequest() *services.UpdateProfileRequest {
	field := func(o httputil.OptionalString) *string {
		if !o.Present {
			return nil
		}
		if o.Value == nil {
			empty := ""
			return &empty
		}
		return o.Value
	}
	return &services.UpdateProfileRequest{
		Username:    field(b.Username),
		FirstName:   field(b.FirstName),
		LastName:    field(b.LastName),
		AvatarURL:   field(b.AvatarURL),
		DateOfBirth: field(b.DateOfBirth),
		Bio:         field(b.Bio),
	}
}

// GetMe returns the caller's profile
// GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetMe(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// UpdateMe applies a partial profile update
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body updateProfileBody
	if !parseBody(w, r, &body) {
		return
	}

	profile, err := h.service.UpdateMe(r.Context(), httputil.GetUserID(r), body.toRequest())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
