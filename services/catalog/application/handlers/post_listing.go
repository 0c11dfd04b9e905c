package handlers

import (
	"net/http"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	pkgvalidator "github.com/ghuser/sharebox/pkg/validator"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

// CreateListingRequest is the request body for POST /listings.
type CreateListingRequest struct {
	Type        string   `json:"type"        validate:"required,oneof=donation sale" example:"sale"`
	Title       string   `json:"title"       validate:"required,min=1,max=120"       example:"Road bike"`
	Description string   `json:"description" validate:"required,min=1,max=2000"      example:"Lightly used"`
	Category    string   `json:"category"    validate:"required,max=64"              example:"sports"`
	Condition   string   `json:"condition"   validate:"required,oneof=new excellent good fair" example:"good"`
	Price       *float64 `json:"price,omitempty" example:"500"`
	Negotiable  bool     `json:"negotiable"`
	Tags        []string `json:"tags,omitempty"   validate:"max=5"`
	Images      []string `json:"images,omitempty" validate:"max=5,dive,url"`
} // @name CreateListingRequest

// PostListingHandler handles POST /listings requests.
type PostListingHandler struct {
	svc *appsvcs.Services
}

// NewPostListingHandler returns a PostListingHandler backed by the given services.
func NewPostListingHandler(svc *appsvcs.Services) *PostListingHandler {
	return &PostListingHandler{svc: svc}
}

// Execute creates a new listing owned by the authenticated user.
//
//	@Summary		Create listing
//	@Description	Creates a new donation or sale listing
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateListingRequest	true	"Listing creation request"
//	@Success		201		{object}	ListingResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/listings [post]
func (h *PostListingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateListingRequest](w, r)
	if !ok {
		return
	}

	listing, err := h.svc.Catalog.Create(r.Context(), identity, appsvcs.CreateListingInput{
		Type:        models.ListingType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   models.Condition(req.Condition),
		Price:       req.Price,
		Negotiable:  req.Negotiable,
		Tags:        req.Tags,
		Images:      req.Images,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toListingResponse(listing))
}
