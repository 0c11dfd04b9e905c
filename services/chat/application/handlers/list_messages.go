package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/chat/application/services"
)

// ListMessagesHandler handles GET /transactions/{transactionID}/messages.
type ListMessagesHandler struct {
	svc *appsvcs.Services
}

func NewListMessagesHandler(svc *appsvcs.Services) *ListMessagesHandler {
	return &ListMessagesHandler{svc: svc}
}

// Execute returns the full conversation, oldest first.
//
//	@Summary		List messages
//	@Description	Returns a transaction's conversation in send order
//	@Tags			messages
//	@Produce		json
//	@Param			transactionID	path		string	true	"Transaction id"
//	@Success		200				{array}		MessageResponse
//	@Failure		401				{object}	ChatErrorResponse
//	@Failure		403				{object}	ChatErrorResponse
//	@Failure		404				{object}	ChatErrorResponse
//	@Router			/transactions/{transactionID}/messages [get]
func (h *ListMessagesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	msgs, err := h.svc.Chat.List(r.Context(), chi.URLParam(r, "transactionID"), identity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toMessageResponses(msgs))
}
