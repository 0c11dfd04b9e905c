package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/trade/application/services"
	"github.com/ghuser/sharebox/services/trade/domain/models"
)

// SetTransactionStatusRequest is the request body for
// PUT /transactions/{transactionID}/status.
type SetTransactionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved completed rejected" example:"approved"`
} // @name SetTransactionStatusRequest

// PutTransactionStatusHandler handles PUT /transactions/{transactionID}/status.
type PutTransactionStatusHandler struct {
	svc *appsvcs.Services
}

func NewPutTransactionStatusHandler(svc *appsvcs.Services) *PutTransactionStatusHandler {
	return &PutTransactionStatusHandler{svc: svc}
}

// Execute applies a negotiation transition and cascades the listing status.
//
//	@Summary		Transition transaction
//	@Description	Approves, completes, or rejects a negotiation thread
//	@Tags			transactions
//	@Accept			json
//	@Produce		json
//	@Param			transactionID	path		string						true	"Transaction id"
//	@Param			request			body		SetTransactionStatusRequest	true	"Target status"
//	@Success		200				{object}	TransactionResponse
//	@Failure		401				{object}	TradeErrorResponse
//	@Failure		403				{object}	TradeErrorResponse
//	@Failure		404				{object}	TradeErrorResponse
//	@Failure		409				{object}	TradeErrorResponse
//	@Router			/transactions/{transactionID}/status [put]
func (h *PutTransactionStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SetTransactionStatusRequest](w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Trade.SetStatus(
		r.Context(),
		chi.URLParam(r, "transactionID"),
		identity,
		models.Status(req.Status),
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTransactionResponse(tx))
}
