package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"vaultspace/internal/domain"
	"vaultspace/internal/httputil"
)

// Authenticator resolves a bearer token to a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// Auth requires a valid bearer token on every request except the public
// paths and CORS pre-flights. The user id is stored in the request context.
func Auth(authenticator Authenticator, logger *slog.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				detail := "could not validate credentials"
				if errors.Is(err, domain.ErrTokenExpired) {
					detail = "token has expired"
				} else if !errors.Is(err, domain.ErrUnauthorized) {
					logger.Error("token verification failed", "error", err, "path", r.URL.Path)
				}
				httputil.RespondError(w, http.StatusUnauthorized, detail)
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
