package models

import "time"

// Status is a transaction's negotiation state.
//
//	pending → approved → completed
//	pending | approved → rejected
//
// completed and rejected are terminal. Every transition cascades a listing
// status change: approval keeps (or puts) the listing pending, completion
// closes it as sold/taken, rejection reopens it as available.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is a known transaction status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s can never be exited.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransitionTo reports whether the negotiation state machine allows
// moving from s to next. Completion is only reachable through approval.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted || next == StatusRejected
	}
	return false
}

// Transaction is one buyer-seller negotiation thread tied to exactly one
// listing. Listing title/price/type and the latest message are denormalized
// onto it so inbox views render without extra reads. JSON tags double as
// document-store field names.
type Transaction struct {
	ID        string `json:"id"`
	ListingID string `json:"listingId"`

	// Denormalized listing snapshot, frozen at creation time.
	ListingTitle string   `json:"listingTitle"`
	ListingType  string   `json:"listingType"`
	ListingPrice *float64 `json:"listingPrice,omitempty"`

	BuyerID    string `json:"buyerId"`
	BuyerName  string `json:"buyerName"`
	SellerID   string `json:"sellerId"`
	SellerName string `json:"sellerName"`

	// OfferedPrice is set only for sale listings, zero allowed.
	OfferedPrice *float64 `json:"offeredPrice,omitempty"`

	Status Status `json:"status"`

	// Conversation preview, refreshed on every message append.
	LastMessage         string `json:"lastMessage"`
	LastMessageSenderID string `json:"lastMessageSenderId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Participant reports whether userID is the buyer or the seller.
func (t *Transaction) Participant(userID string) bool {
	return userID == t.BuyerID || userID == t.SellerID
}
