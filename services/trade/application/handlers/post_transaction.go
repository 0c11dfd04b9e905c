package handlers

import (
	"net/http"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/trade/application/services"
)

// CreateTransactionRequest is the request body for POST /transactions.
type CreateTransactionRequest struct {
	ListingID    string   `json:"listing_id" validate:"required" example:"f4a21c3e"`
	Message      string   `json:"message,omitempty" validate:"max=2000" example:"Would you take 450?"`
	OfferedPrice *float64 `json:"offered_price,omitempty" example:"450"`
} // @name CreateTransactionRequest

// PostTransactionHandler handles POST /transactions requests.
type PostTransactionHandler struct {
	svc *appsvcs.Services
}

func NewPostTransactionHandler(svc *appsvcs.Services) *PostTransactionHandler {
	return &PostTransactionHandler{svc: svc}
}

// Execute opens a negotiation thread against a listing, flips the listing to
// pending, and seeds the opening message if one was supplied.
//
//	@Summary		Open transaction
//	@Description	Opens a buyer-seller negotiation thread on a listing
//	@Tags			transactions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTransactionRequest	true	"Transaction request"
//	@Success		201		{object}	TransactionResponse
//	@Failure		401		{object}	TradeErrorResponse
//	@Failure		403		{object}	TradeErrorResponse
//	@Failure		404		{object}	TradeErrorResponse
//	@Failure		422		{object}	TradeErrorResponse
//	@Router			/transactions [post]
func (h *PostTransactionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateTransactionRequest](w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Trade.Create(r.Context(), identity, appsvcs.CreateTransactionInput{
		ListingID:    req.ListingID,
		Message:      req.Message,
		OfferedPrice: req.OfferedPrice,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toTransactionResponse(tx))
}
