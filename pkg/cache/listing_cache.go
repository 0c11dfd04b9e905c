package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ListingCacheTTL is the time-to-live for cached listings.
	ListingCacheTTL = 1 * time.Hour

	listingCacheKeyPrefix = "listing"
)

// CachedListing is the denormalized listing read model stored in Redis.
// Counters are intentionally absent: views and likes mutate too often to be
// worth caching, so readers always take them from the store.
type CachedListing struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Condition string    `json:"condition"`
	Status    string    `json:"status"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// ListingCache provides structured read/write operations for listing cache
// entries. Key format: "listing:{listingID}".
type ListingCache struct {
	client *RedisClient
}

// NewListingCache creates a ListingCache backed by the given RedisClient.
func NewListingCache(r *RedisClient) *ListingCache {
	return &ListingCache{client: r}
}

// Get retrieves a cached listing by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ListingCache) Get(ctx context.Context, listingID string) (*CachedListing, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(listingID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	price, err := strconv.ParseFloat(vals["price"], 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}

	return &CachedListing{
		ID:        vals["id"],
		OwnerID:   vals["owner_id"],
		OwnerName: vals["owner_name"],
		Type:      vals["type"],
		Title:     vals["title"],
		Category:  vals["category"],
		Condition: vals["condition"],
		Status:    vals["status"],
		Price:     price,
		CreatedAt: createdAt,
	}, nil
}

// Set writes a cached listing as a Redis hash with a 1-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ListingCache) Set(ctx context.Context, l *CachedListing) error {
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, c.key(l.ID),
		"id", l.ID,
		"owner_id", l.OwnerID,
		"owner_name", l.OwnerName,
		"type", l.Type,
		"title", l.Title,
		"category", l.Category,
		"condition", l.Condition,
		"status", l.Status,
		"price", strconv.FormatFloat(l.Price, 'f', -1, 64),
		"created_at", l.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key(l.ID), ListingCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached listing. Status changes and edits call this so
// stale copies never outlive a mutation.
func (c *ListingCache) Delete(ctx context.Context, listingID string) error {
	if err := c.client.Client().Del(ctx, c.key(listingID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ListingCache) key(listingID string) string {
	return fmt.Sprintf("%s:%s", listingCacheKeyPrefix, listingID)
}
