package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/chat/application/services"
)

// SendMessageRequest is the request body for
// POST /transactions/{transactionID}/messages.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000" example:"Is this still available?"`
} // @name SendMessageRequest

// PostMessageHandler handles POST /transactions/{transactionID}/messages.
type PostMessageHandler struct {
	svc *appsvcs.Services
}

func NewPostMessageHandler(svc *appsvcs.Services) *PostMessageHandler {
	return &PostMessageHandler{svc: svc}
}

// Execute appends one message to the conversation.
//
//	@Summary		Send message
//	@Description	Appends a text message to a transaction's conversation
//	@Tags			messages
//	@Accept			json
//	@Produce		json
//	@Param			transactionID	path		string				true	"Transaction id"
//	@Param			request			body		SendMessageRequest	true	"Message body"
//	@Success		201				{object}	MessageResponse
//	@Failure		401				{object}	ChatErrorResponse
//	@Failure		403				{object}	ChatErrorResponse
//	@Failure		404				{object}	ChatErrorResponse
//	@Failure		422				{object}	ChatErrorResponse
//	@Router			/transactions/{transactionID}/messages [post]
func (h *PostMessageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SendMessageRequest](w, r)
	if !ok {
		return
	}

	msg, err := h.svc.Chat.Send(r.Context(), chi.URLParam(r, "transactionID"), identity, req.Body)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toMessageResponse(msg))
}
