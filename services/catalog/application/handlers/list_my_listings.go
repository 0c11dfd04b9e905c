package handlers

import (
	"net/http"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// ListMyListingsHandler handles GET /listings/mine requests.
type ListMyListingsHandler struct {
	svc *appsvcs.Services
}

func NewListMyListingsHandler(svc *appsvcs.Services) *ListMyListingsHandler {
	return &ListMyListingsHandler{svc: svc}
}

// Execute lists every listing owned by the authenticated user, newest first.
//
//	@Summary		List own listings
//	@Description	Lists all listings of the authenticated user, any status
//	@Tags			listings
//	@Produce		json
//	@Success		200	{array}		ListingResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/listings/mine [get]
func (h *ListMyListingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	listings, err := h.svc.Catalog.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toListingResponses(listings))
}
