package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"vaultspace/internal/domain"
	"vaultspace/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Server-side
// failures are logged and their details are not exposed.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := domain.StatusCode(err)

	var conflictErr *domain.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		extras := map[string]interface{}{"resource_type": conflictErr.ResourceType}
		if conflictErr.ResourceID != "" {
			extras["resource_id"] = conflictErr.ResourceID
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), extras)
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "error", err)
		detail := "internal server error"
		if errors.Is(err, domain.ErrStorageMissing) {
			detail = "stored file missing"
		} else if errors.Is(err, domain.ErrDecryptionFailed) {
			detail = "stored file could not be decrypted"
		}
		httputil.RespondError(w, status, detail)
	default:
		httputil.RespondError(w, status, err.Error())
	}
}

// pathID parses a path parameter or writes a 400
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := httputil.PathID(r, name)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// parseBody decodes a JSON body or writes a 400
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
