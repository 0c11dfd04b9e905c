package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// GetListingHandler handles GET /listings/{listingID} requests.
type GetListingHandler struct {
	svc *appsvcs.Services
}

func NewGetListingHandler(svc *appsvcs.Services) *GetListingHandler {
	return &GetListingHandler{svc: svc}
}

// Execute fetches one listing. `?view=1` asks for a best-effort view-counter
// bump, honored only for authenticated callers.
//
//	@Summary		Get listing
//	@Description	Fetches a single listing by id, optionally counting the view
//	@Tags			listings
//	@Produce		json
//	@Param			listingID	path		string	true	"Listing id"
//	@Param			view		query		string	false	"Set to 1 to count this view"
//	@Success		200			{object}	ListingResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/listings/{listingID} [get]
func (h *GetListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	// Viewer identity is optional here: anonymous reads are allowed, they
	// just never bump the counter.
	identity, _ := auth.IdentityFromCtx(r.Context())

	listing, err := h.svc.Catalog.Get(
		r.Context(),
		chi.URLParam(r, "listingID"),
		identity,
		r.URL.Query().Get("view") == "1",
	)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toListingResponse(listing))
}
