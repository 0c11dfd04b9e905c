package events

import "time"

// Topics published by the catalog service.
const (
	TopicListingCreated = "listing.created"
)

// ListingCreatedEvent is published after a new listing is persisted.
// The worker warms the Redis read-model cache from it.
type ListingCreatedEvent struct {
	EventID    string    `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ListingID  string    `json:"listing_id"`
	OwnerID    string    `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Condition  string    `json:"condition"`
	Status     string    `json:"status"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}
