package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/sharebox/pkg/errhttp"
	"github.com/ghuser/sharebox/pkg/httpx"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// ListListingsHandler handles GET /listings requests (the public feed).
type ListListingsHandler struct {
	svc             *appsvcs.Services
	defaultPageSize int
	maxPageSize     int
}

func NewListListingsHandler(svc *appsvcs.Services, defaultPageSize, maxPageSize int) *ListListingsHandler {
	return &ListListingsHandler{svc: svc, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// Execute pages through open listings, newest first.
//
//	@Summary		List listings
//	@Description	Pages through available and pending listings, newest first
//	@Tags			listings
//	@Produce		json
//	@Param			cursor		query		string	false	"Continuation cursor from a previous page"
//	@Param			page_size	query		int		false	"Page size (default 20, max 100)"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			type		query		string	false	"Filter by listing type (donation|sale)"
//	@Success		200			{object}	ListingPageResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/listings [get]
func (h *ListListingsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := h.defaultPageSize
	if raw := q.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	page, err := h.svc.Catalog.Feed(r.Context(), appsvcs.FeedQuery{
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Cursor:   q.Get("cursor"),
		PageSize: pageSize,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ListingPageResponse{
		Listings:   toListingResponses(page.Listings),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	})
}
