package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// DeleteListingHandler handles DELETE /listings/{listingID} requests.
type DeleteListingHandler struct {
	svc *appsvcs.Services
}

func NewDeleteListingHandler(svc *appsvcs.Services) *DeleteListingHandler {
	return &DeleteListingHandler{svc: svc}
}

// Execute hard-deletes an owned listing.
//
//	@Summary		Delete listing
//	@Description	Permanently removes an owned listing
//	@Tags			listings
//	@Param			listingID	path	string	true	"Listing id"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/listings/{listingID} [delete]
func (h *DeleteListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := h.svc.Catalog.Delete(r.Context(), chi.URLParam(r, "listingID"), identity); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.NoContent(w)
}
