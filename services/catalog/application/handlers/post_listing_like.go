package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// ToggleLikeRequest is the request body for POST /listings/{listingID}/like.
type ToggleLikeRequest struct {
	Delta int `json:"delta" validate:"required,oneof=1 -1" example:"1"`
} // @name ToggleLikeRequest

// ToggleLikeResponse returns the like count after the toggle.
type ToggleLikeResponse struct {
	Likes int64 `json:"likes" example:"4"`
} // @name ToggleLikeResponse

// PostListingLikeHandler handles POST /listings/{listingID}/like requests.
type PostListingLikeHandler struct {
	svc *appsvcs.Services
}

func NewPostListingLikeHandler(svc *appsvcs.Services) *PostListingLikeHandler {
	return &PostListingLikeHandler{svc: svc}
}

// Execute applies a like or unlike to the aggregate counter.
//
//	@Summary		Toggle like
//	@Description	Atomically applies +1 or -1 to the listing's like counter
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			listingID	path		string				true	"Listing id"
//	@Param			request		body		ToggleLikeRequest	true	"Like delta"
//	@Success		200			{object}	ToggleLikeResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/listings/{listingID}/like [post]
func (h *PostListingLikeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.IdentityFromCtx(r.Context()); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ToggleLikeRequest](w, r)
	if !ok {
		return
	}

	likes, err := h.svc.Catalog.ToggleLike(r.Context(), chi.URLParam(r, "listingID"), req.Delta)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ToggleLikeResponse{Likes: likes})
}
