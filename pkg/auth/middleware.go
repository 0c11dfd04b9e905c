package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/sharebox/pkg/httpx"
	"github.com/ghuser/sharebox/pkg/logger"
)

const (
	sessionName = "sharebox_session"

	sessionUserIDKey      = "user_id"
	sessionDisplayNameKey = "display_name"
	sessionEmailKey       = "email"
)

// RequireAuth is a chi middleware that enforces authentication via session
// cookies. It reads the session, extracts the caller's Identity, and injects
// it into the request context. Returns 401 Unauthorized if the session is
// missing, invalid, or lacks a user id.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userID == "" {
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			id := Identity{ID: userID}
			if name, ok := session.Values[sessionDisplayNameKey].(string); ok {
				id.DisplayName = name
			}
			if email, ok := session.Values[sessionEmailKey].(string); ok {
				id.Email = email
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth injects the caller's Identity when a valid session cookie is
// present and passes the request through untouched otherwise. Public read
// endpoints use it so anonymous browsing works while authenticated callers
// still get identity-dependent behavior (view counting).
func OptionalAuth(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			id := Identity{ID: userID}
			if name, ok := session.Values[sessionDisplayNameKey].(string); ok {
				id.DisplayName = name
			}
			if email, ok := session.Values[sessionEmailKey].(string); ok {
				id.Email = email
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
