package models

import "time"

// ListingType distinguishes giveaways from priced sales.
type ListingType string

const (
	TypeDonation ListingType = "donation"
	TypeSale     ListingType = "sale"
)

// Valid reports whether t is a known listing type.
func (t ListingType) Valid() bool {
	return t == TypeDonation || t == TypeSale
}

// Condition grades the physical state of the listed object.
type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
)

// Valid reports whether c is a known condition grade.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Status is a listing's lifecycle state.
//
//	available → pending → sold | taken
//	pending   → available   (negotiation rejected)
//
// sold and taken are terminal. sold applies to sales, taken to donations.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusTaken     Status = "taken"
)

// Valid reports whether s is a known listing status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold, StatusTaken:
		return true
	}
	return false
}

// Terminal reports whether s can never be exited.
func (s Status) Terminal() bool {
	return s == StatusSold || s == StatusTaken
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The status write path trusts its callers and does not consult this; it
// exists for the automated cascade and for tests of the lifecycle itself.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAvailable:
		return next == StatusPending
	case StatusPending:
		return next == StatusAvailable || next == StatusSold || next == StatusTaken
	}
	return false
}

// ClosedStatusFor returns the terminal status a completed negotiation puts a
// listing of the given type into.
func ClosedStatusFor(t ListingType) Status {
	if t == TypeSale {
		return StatusSold
	}
	return StatusTaken
}

// MaxTags and MaxImages bound the tag set and image list of one listing.
const (
	MaxTags   = 5
	MaxImages = 5
)

// Listing is the catalog aggregate: one donated or sale-priced secondhand
// object. JSON tags double as document-store field names.
type Listing struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	OwnerName   string      `json:"ownerName"`
	Type        ListingType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Condition   Condition   `json:"condition"`
	// Price is set and positive only for sales; donations carry no price.
	Price      *float64 `json:"price,omitempty"`
	Negotiable bool     `json:"negotiable,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Images     []string `json:"images,omitempty"`
	Status     Status   `json:"status"`
	Views      int64    `json:"views"`
	Likes      int64    `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
