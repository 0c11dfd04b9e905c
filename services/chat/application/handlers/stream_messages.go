package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	appsvcs "github.com/ghuser/sharebox/services/chat/application/services"
	"github.com/ghuser/sharebox/services/chat/domain/models"
)

// StreamMessagesHandler handles GET /transactions/{transactionID}/messages/stream.
// It serves the conversation as server-sent events: one full ordered snapshot
// immediately, then a fresh snapshot after every append.
type StreamMessagesHandler struct {
	svc *appsvcs.Services
}

func NewStreamMessagesHandler(svc *appsvcs.Services) *StreamMessagesHandler {
	return &StreamMessagesHandler{svc: svc}
}

// Execute streams conversation snapshots until the client disconnects.
//
//	@Summary		Stream messages
//	@Description	Server-sent events stream of conversation snapshots
//	@Tags			messages
//	@Produce		text/event-stream
//	@Param			transactionID	path	string	true	"Transaction id"
//	@Success		200
//	@Failure		401	{object}	ChatErrorResponse
//	@Failure		403	{object}	ChatErrorResponse
//	@Failure		404	{object}	ChatErrorResponse
//	@Router			/transactions/{transactionID}/messages/stream [get]
func (h *StreamMessagesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Headers go out before the first delivery can race the write.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Deliveries are sequential per subscription, so writing to w from the
	// onChange callback is single-writer.
	onChange := func(msgs []*models.Message) {
		payload, err := json.Marshal(toMessageResponses(msgs))
		if err != nil {
			return
		}
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if _, err := w.Write(payload); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return
		}
		flusher.Flush()
	}

	unsubscribe, err := h.svc.Chat.Subscribe(r.Context(), chi.URLParam(r, "transactionID"), identity, onChange)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	defer unsubscribe()

	<-r.Context().Done()
}
