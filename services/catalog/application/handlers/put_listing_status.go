package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

// SetListingStatusRequest is the request body for PUT /listings/{listingID}/status.
// The HTTP surface only accepts the owner's manual close; the automated
// negotiation cascade goes through the trade service in-process.
type SetListingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=sold taken" example:"sold"`
} // @name SetListingStatusRequest

// PutListingStatusHandler handles PUT /listings/{listingID}/status requests.
type PutListingStatusHandler struct {
	svc *appsvcs.Services
}

func NewPutListingStatusHandler(svc *appsvcs.Services) *PutListingStatusHandler {
	return &PutListingStatusHandler{svc: svc}
}

// Execute lets the owner manually mark a listing sold or taken.
//
//	@Summary		Close listing
//	@Description	Marks an owned listing sold or taken without a transaction
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			listingID	path		string					true	"Listing id"
//	@Param			request		body		SetListingStatusRequest	true	"Closing status"
//	@Success		200			{object}	ListingResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/listings/{listingID}/status [put]
func (h *PutListingStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SetListingStatusRequest](w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "listingID")

	listing, err := h.svc.Catalog.Get(r.Context(), id, identity, false)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if listing.OwnerID != identity.ID {
		errhttp.WriteError(w, catalogdomain.ErrNotOwner)
		return
	}

	if err := h.svc.Catalog.SetStatus(r.Context(), id, models.Status(req.Status)); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	updated, err := h.svc.Catalog.Get(r.Context(), id, identity, false)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toListingResponse(updated))
}
