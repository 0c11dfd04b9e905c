package events

import "time"

// Topics published by the trade service.
const (
	TopicTransactionCreated       = "transaction.created"
	TopicTransactionStatusChanged = "transaction.status_changed"
)

// TransactionCreatedEvent is published after a negotiation thread is opened.
type TransactionCreatedEvent struct {
	EventID       string    `json:"event_id"`
	Version       int       `json:"version"`
	TransactionID string    `json:"transaction_id"`
	ListingID     string    `json:"listing_id"`
	BuyerID       string    `json:"buyer_id"`
	SellerID      string    `json:"seller_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// TransactionStatusChangedEvent is published after a status transition,
// carrying both sides of the transition for consumers that audit the
// negotiation lifecycle.
type TransactionStatusChangedEvent struct {
	EventID       string    `json:"event_id"`
	Version       int       `json:"version"`
	TransactionID string    `json:"transaction_id"`
	ListingID     string    `json:"listing_id"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
