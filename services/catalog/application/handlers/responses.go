package handlers

import (
	"time"

	"github.com/ghuser/sharebox/services/catalog/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"title must not be empty"`
} // @name ErrorResponse

// ListingResponse is the wire shape of one listing.
type ListingResponse struct {
	ID          string    `json:"id"          example:"f4a21c3e"`
	OwnerID     string    `json:"owner_id"    example:"user-42"`
	OwnerName   string    `json:"owner_name"  example:"Alice"`
	Type        string    `json:"type"        example:"sale"`
	Title       string    `json:"title"       example:"Road bike"`
	Description string    `json:"description" example:"Lightly used"`
	Category    string    `json:"category"    example:"sports"`
	Condition   string    `json:"condition"   example:"good"`
	Price       *float64  `json:"price,omitempty" example:"500"`
	Negotiable  bool      `json:"negotiable"`
	Tags        []string  `json:"tags,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Status      string    `json:"status"      example:"available"`
	Views       int64     `json:"views"       example:"12"`
	Likes       int64     `json:"likes"       example:"3"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
} // @name ListingResponse

// ListingPageResponse is one page of the public feed.
type ListingPageResponse struct {
	Listings   []ListingResponse `json:"listings"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
} // @name ListingPageResponse

func toListingResponse(l *models.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		OwnerName:   l.OwnerName,
		Type:        string(l.Type),
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Condition:   string(l.Condition),
		Price:       l.Price,
		Negotiable:  l.Negotiable,
		Tags:        l.Tags,
		Images:      l.Images,
		Status:      string(l.Status),
		Views:       l.Views,
		Likes:       l.Likes,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toListingResponses(listings []*models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}
