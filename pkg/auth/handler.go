package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/sharebox/pkg/httpx"
	"github.com/ghuser/sharebox/pkg/logger"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
)

// StartSessionRequest is the request body for POST /auth/session. The caller
// is the surrounding application's trusted login flow; this endpoint only
// binds the identity it is handed to a server-side session.
type StartSessionRequest struct {
	UserID      string `json:"user_id" validate:"required,min=1,max=128"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
} // @name StartSessionRequest

// SessionHandler establishes and destroys sessions.
type SessionHandler struct {
	store sessions.Store
	log   logger.Logger
}

// NewSessionHandler returns a SessionHandler over the given session store.
func NewSessionHandler(store sessions.Store, log logger.Logger) *SessionHandler {
	return &SessionHandler{store: store, log: log}
}

// Start handles POST /auth/session.
//
//	@Summary		Start session
//	@Description	Binds a trusted identity to a server-side session cookie
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	StartSessionRequest	true	"Identity"
//	@Success		204
//	@Failure		400	{object}	map[string]string
//	@Failure		422	{object}	map[string]string
//	@Router			/auth/session [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[StartSessionRequest](w, r)
	if !ok {
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		// tampered or expired cookie; Get returned a fresh session anyway
		h.log.WarnContext(r.Context(), "replacing invalid session", "error", err)
	}

	session.Values[sessionUserIDKey] = req.UserID
	session.Values[sessionDisplayNameKey] = req.DisplayName
	session.Values[sessionEmailKey] = req.Email
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "could not establish session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// End handles DELETE /auth/session.
//
//	@Summary	End session
//	@Tags		auth
//	@Success	204
//	@Router		/auth/session [delete]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "destroy session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "could not end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
