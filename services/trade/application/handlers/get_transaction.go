package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/trade/application/services"
)

// GetTransactionHandler handles GET /transactions/{transactionID} requests.
type GetTransactionHandler struct {
	svc *appsvcs.Services
}

func NewGetTransactionHandler(svc *appsvcs.Services) *GetTransactionHandler {
	return &GetTransactionHandler{svc: svc}
}

// Execute fetches one transaction, visible only to its participants.
//
//	@Summary		Get transaction
//	@Description	Fetches a single transaction by id
//	@Tags			transactions
//	@Produce		json
//	@Param			transactionID	path		string	true	"Transaction id"
//	@Success		200				{object}	TransactionResponse
//	@Failure		401				{object}	TradeErrorResponse
//	@Failure		403				{object}	TradeErrorResponse
//	@Failure		404				{object}	TradeErrorResponse
//	@Router			/transactions/{transactionID} [get]
func (h *GetTransactionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	tx, err := h.svc.Trade.Get(r.Context(), chi.URLParam(r, "transactionID"), identity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTransactionResponse(tx))
}
