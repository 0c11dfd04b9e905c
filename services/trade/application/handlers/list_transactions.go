package handlers

import (
	"net/http"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/trade/application/services"
	"github.com/ghuser/sharebox/services/trade/domain/models"
)

// ListTransactionsHandler handles GET /transactions requests.
type ListTransactionsHandler struct {
	svc *appsvcs.Services
}

func NewListTransactionsHandler(svc *appsvcs.Services) *ListTransactionsHandler {
	return &ListTransactionsHandler{svc: svc}
}

// Execute lists the caller's transactions. `?role=buyer` and `?role=seller`
// select one side; the default is the merged inbox ordered by most recent
// activity.
//
//	@Summary		List transactions
//	@Description	Lists the caller's negotiation threads
//	@Tags			transactions
//	@Produce		json
//	@Param			role	query		string	false	"buyer, seller, or omitted for the full inbox"
//	@Success		200		{array}		TransactionResponse
//	@Failure		401		{object}	TradeErrorResponse
//	@Router			/transactions [get]
func (h *ListTransactionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	var txs []*models.Transaction
	switch r.URL.Query().Get("role") {
	case "buyer":
		txs, err = h.svc.Trade.ListAsBuyer(r.Context(), identity.ID)
	case "seller":
		txs, err = h.svc.Trade.ListAsSeller(r.Context(), identity.ID)
	default:
		txs, err = h.svc.Trade.Inbox(r.Context(), identity.ID)
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTransactionResponses(txs))
}
