package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

// UpdateListingRequest is the request body for PATCH /listings/{listingID}.
// Absent fields are left unchanged.
type UpdateListingRequest struct {
	Title       *string   `json:"title,omitempty"       validate:"omitempty,min=1,max=120"`
	Description *string   `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Category    *string   `json:"category,omitempty"    validate:"omitempty,max=64"`
	Condition   *string   `json:"condition,omitempty"   validate:"omitempty,oneof=new excellent good fair"`
	Price       *float64  `json:"price,omitempty"`
	Negotiable  *bool     `json:"negotiable,omitempty"`
	Tags        *[]string `json:"tags,omitempty"   validate:"omitempty,max=5"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,max=5,dive,url"`
} // @name UpdateListingRequest

// PatchListingHandler handles PATCH /listings/{listingID} requests.
type PatchListingHandler struct {
	svc *appsvcs.Services
}

func NewPatchListingHandler(svc *appsvcs.Services) *PatchListingHandler {
	return &PatchListingHandler{svc: svc}
}

// Execute applies a partial content edit by the listing owner.
//
//	@Summary		Update listing
//	@Description	Partially updates content fields of an owned listing
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			listingID	path		string					true	"Listing id"
//	@Param			request		body		UpdateListingRequest	true	"Fields to change"
//	@Success		200			{object}	ListingResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/listings/{listingID} [patch]
func (h *PatchListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateListingRequest](w, r)
	if !ok {
		return
	}

	in := appsvcs.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Negotiable:  req.Negotiable,
		Tags:        req.Tags,
		Images:      req.Images,
	}
	if req.Condition != nil {
		cond := models.Condition(*req.Condition)
		in.Condition = &cond
	}

	listing, err := h.svc.Catalog.Update(r.Context(), chi.URLParam(r, "listingID"), identity, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toListingResponse(listing))
}
