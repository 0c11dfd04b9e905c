package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/sharebox/pkg/auth"
	pkgcache "github.com/ghuser/sharebox/pkg/cache"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/logger"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	domainevents "github.com/ghuser/sharebox/services/catalog/domain/events"
	"github.com/ghuser/sharebox/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/sharebox/services/catalog/domain/services"
)

// CollectionListings is the document collection holding listings.
const CollectionListings = "listings"

// EventPublisher is the slice of the event bus this service needs.
// Nil disables publishing (tests, tooling).
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// CatalogService owns listing CRUD, the listing feed, and the view/like
// counters. Reads of listing summaries are served from Redis when available.
type CatalogService struct {
	store docstore.Store
	cache *pkgcache.ListingCache
	bus   EventPublisher
	log   logger.Logger
}

// NewCatalogService wires a CatalogService. cache and bus may be nil.
func NewCatalogService(store docstore.Store, cache *pkgcache.ListingCache, bus EventPublisher, log logger.Logger) *CatalogService {
	return &CatalogService{store: store, cache: cache, bus: bus, log: log}
}

// CreateListingInput carries the caller-editable fields of a new listing.
type CreateListingInput struct {
	Type        models.ListingType
	Title       string
	Description string
	Category    string
	Condition   models.Condition
	Price       *float64
	Negotiable  bool
	Tags        []string
	Images      []string
}

// Create validates and persists a new listing. The listing starts available
// with zeroed counters and store-assigned timestamps.
func (s *CatalogService) Create(ctx context.Context, owner auth.Identity, in CreateListingInput) (*models.Listing, error) {
	listing := &models.Listing{
		OwnerID:     owner.ID,
		OwnerName:   owner.DisplayName,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Condition:   in.Condition,
		Price:       in.Price,
		Negotiable:  in.Negotiable,
		Tags:        in.Tags,
		Images:      in.Images,
		Status:      models.StatusAvailable,
	}
	if err := domainsvcs.ValidateNewListing(listing); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidListing, err)
	}

	doc := docstore.Document{
		"ownerId":     listing.OwnerID,
		"ownerName":   listing.OwnerName,
		"type":        string(listing.Type),
		"title":       listing.Title,
		"description": listing.Description,
		"category":    listing.Category,
		"condition":   string(listing.Condition),
		"negotiable":  listing.Negotiable,
		"tags":        listing.Tags,
		"images":      listing.Images,
		"status":      string(models.StatusAvailable),
		"views":       0,
		"likes":       0,
		"createdAt":   docstore.ServerTimestamp,
		"updatedAt":   docstore.ServerTimestamp,
	}
	if listing.Price != nil {
		doc["price"] = *listing.Price
	}

	id, err := s.store.Insert(ctx, CollectionListings, doc)
	if err != nil {
		return nil, fmt.Errorf("save listing: %w", err)
	}

	created, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	s.warmCache(created)
	s.publishCreated(ctx, created)
	return created, nil
}

// Get retrieves a listing. When incrementView is set and the viewer is
// authenticated, the view counter is bumped as a best-effort side effect;
// a failed bump never fails the read.
func (s *CatalogService) Get(ctx context.Context, id string, viewer auth.Identity, incrementView bool) (*models.Listing, error) {
	if incrementView && viewer.ID != "" {
		err := s.store.AtomicUpdate(ctx, CollectionListings, id, func(doc docstore.Document) (docstore.Document, error) {
			doc["views"] = asCount(doc["views"]) + 1
			return doc, nil
		})
		if err != nil && !errors.Is(err, docstore.ErrNotFound) {
			s.log.WarnContext(ctx, "view counter bump failed", "listing_id", id, "error", err)
		}
	}

	return s.getListing(ctx, id)
}

// FeedQuery selects and pages the public listing feed.
type FeedQuery struct {
	Category string
	Type     string
	Cursor   string
	PageSize int
}

// ListingPage is one page of feed results.
type ListingPage struct {
	Listings   []*models.Listing
	NextCursor string
	HasMore    bool
}

// Feed returns open listings (available or pending), newest first, with an
// opaque continuation cursor.
func (s *CatalogService) Feed(ctx context.Context, q FeedQuery) (*ListingPage, error) {
	filters := []docstore.Filter{
		{Field: "status", Op: docstore.OpIn, Value: []string{
			string(models.StatusAvailable), string(models.StatusPending),
		}},
	}
	if q.Category != "" {
		filters = append(filters, docstore.Filter{Field: "category", Op: docstore.OpEqual, Value: q.Category})
	}
	if q.Type != "" {
		filters = append(filters, docstore.Filter{Field: "type", Op: docstore.OpEqual, Value: q.Type})
	}

	page, err := s.store.Query(ctx, CollectionListings, docstore.Query{
		Filters:    filters,
		OrderBy:    "createdAt",
		Descending: true,
		Limit:      q.PageSize,
		Cursor:     q.Cursor,
	})
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}

	listings, err := decodeListings(page.Docs)
	if err != nil {
		return nil, err
	}
	return &ListingPage{Listings: listings, NextCursor: page.NextCursor, HasMore: page.HasMore}, nil
}

// ListByOwner returns every listing of one owner, newest first, unpaged.
func (s *CatalogService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	page, err := s.store.Query(ctx, CollectionListings, docstore.Query{
		Filters:    []docstore.Filter{{Field: "ownerId", Op: docstore.OpEqual, Value: ownerID}},
		OrderBy:    "createdAt",
		Descending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query owner listings: %w", err)
	}
	return decodeListings(page.Docs)
}

// UpdateListingInput holds the content fields a partial edit may touch.
// Nil pointers leave the stored value untouched. Status is not editable
// here; lifecycle changes go through SetStatus.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Category    *string
	Condition   *models.Condition
	Price       *float64
	Negotiable  *bool
	Tags        *[]string
	Images      *[]string
}

// Update applies a partial content edit by the listing owner and bumps
// updatedAt.
func (s *CatalogService) Update(ctx context.Context, id string, actor auth.Identity, in UpdateListingInput) (*models.Listing, error) {
	current, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != actor.ID {
		return nil, catalogdomain.ErrNotOwner
	}

	patch := docstore.Document{"updatedAt": docstore.ServerTimestamp}
	applyEdit(current, patch, in)

	if err := domainsvcs.ValidateNewListing(current); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidListing, err)
	}

	if err := s.store.Update(ctx, CollectionListings, id, patch); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, catalogdomain.ErrListingNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.invalidateCache(ctx, id)
	return s.getListing(ctx, id)
}

// SetStatus writes a listing's lifecycle status and bumps updatedAt.
// Callers are trusted to respect the lifecycle: the owner's manual
// mark-as-sold/taken and the negotiation cascade both land here.
func (s *CatalogService) SetStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", catalogdomain.ErrInvalidListing, status)
	}

	err := s.store.Update(ctx, CollectionListings, id, docstore.Document{
		"status":    string(status),
		"updatedAt": docstore.ServerTimestamp,
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return catalogdomain.ErrListingNotFound
		}
		return fmt.Errorf("set listing status: %w", err)
	}

	s.invalidateCache(ctx, id)
	return nil
}

// Delete hard-removes a listing. Transactions and conversations referencing
// it are left in place; their readers handle the dangling reference.
func (s *CatalogService) Delete(ctx context.Context, id string, actor auth.Identity) error {
	current, err := s.getListing(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID != actor.ID {
		return catalogdomain.ErrNotOwner
	}

	if err := s.store.Delete(ctx, CollectionListings, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return catalogdomain.ErrListingNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}

	s.invalidateCache(ctx, id)
	return nil
}

// ToggleLike applies delta (+1 or -1) to the aggregate like counter as one
// atomic read-modify-write, flooring at zero. Concurrent togglers never lose
// an update.
func (s *CatalogService) ToggleLike(ctx context.Context, id string, delta int) (int64, error) {
	if delta != 1 && delta != -1 {
		return 0, fmt.Errorf("%w: like delta must be +1 or -1, got %d", catalogdomain.ErrInvalidListing, delta)
	}

	var likes int64
	err := s.store.AtomicUpdate(ctx, CollectionListings, id, func(doc docstore.Document) (docstore.Document, error) {
		likes = asCount(doc["likes"]) + int64(delta)
		if likes < 0 {
			likes = 0
		}
		doc["likes"] = likes
		return doc, nil
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, catalogdomain.ErrListingNotFound
		}
		return 0, fmt.Errorf("toggle like: %w", err)
	}
	return likes, nil
}

// ListingSummary is the denormalized slice of a listing other services embed.
type ListingSummary struct {
	ID        string
	OwnerID   string
	OwnerName string
	Type      models.ListingType
	Title     string
	Price     *float64
	Status    models.Status
}

// Summary returns the denormalized listing fields used for embedding,
// served read-through from Redis:
//  1. Check the listing cache first.
//  2. On miss (or cache error), read the store.
//  3. Asynchronously warm the cache with the store result.
func (s *CatalogService) Summary(ctx context.Context, id string) (*ListingSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			summary := &ListingSummary{
				ID:        cached.ID,
				OwnerID:   cached.OwnerID,
				OwnerName: cached.OwnerName,
				Type:      models.ListingType(cached.Type),
				Title:     cached.Title,
				Status:    models.Status(cached.Status),
			}
			if summary.Type == models.TypeSale {
				price := cached.Price
				summary.Price = &price
			}
			return summary, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "listing cache read failed", "listing_id", id, "error", err)
		}
	}

	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	s.warmCache(listing)

	return &ListingSummary{
		ID:        listing.ID,
		OwnerID:   listing.OwnerID,
		OwnerName: listing.OwnerName,
		Type:      listing.Type,
		Title:     listing.Title,
		Price:     listing.Price,
		Status:    listing.Status,
	}, nil
}

func (s *CatalogService) getListing(ctx context.Context, id string) (*models.Listing, error) {
	doc, err := s.store.Get(ctx, CollectionListings, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, catalogdomain.ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}

	var listing models.Listing
	if err := docstore.Decode(doc, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *CatalogService) warmCache(l *models.Listing) {
	if s.cache == nil {
		return
	}
	cached := &pkgcache.CachedListing{
		ID:        l.ID,
		OwnerID:   l.OwnerID,
		OwnerName: l.OwnerName,
		Type:      string(l.Type),
		Title:     l.Title,
		Category:  l.Category,
		Condition: string(l.Condition),
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
	}
	if l.Price != nil {
		cached.Price = *l.Price
	}
	go func() {
		if err := s.cache.Set(context.Background(), cached); err != nil {
			s.log.Warn("listing cache warm failed", "listing_id", l.ID, "error", err)
		}
	}()
}

func (s *CatalogService) invalidateCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "listing cache invalidation failed", "listing_id", id, "error", err)
	}
}

func (s *CatalogService) publishCreated(ctx context.Context, l *models.Listing) {
	if s.bus == nil {
		return
	}

	event := domainevents.ListingCreatedEvent{
		EventID:    uuid.NewString(),
		Version:    1,
		ListingID:  l.ID,
		OwnerID:    l.OwnerID,
		OwnerName:  l.OwnerName,
		Type:       string(l.Type),
		Title:      l.Title,
		Category:   l.Category,
		Condition:  string(l.Condition),
		Status:     string(l.Status),
		OccurredAt: l.CreatedAt,
	}
	if l.Price != nil {
		event.Price = *l.Price
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal listing.created", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID)
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, domainevents.TopicListingCreated, msg); err != nil {
		s.log.ErrorContext(ctx, "publish listing.created", "listing_id", l.ID, "error", err)
	}
}

// applyEdit copies each set field of in onto both the in-memory listing
// (for validation) and the store patch.
func applyEdit(l *models.Listing, patch docstore.Document, in UpdateListingInput) {
	if in.Title != nil {
		l.Title = *in.Title
		patch["title"] = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
		patch["description"] = *in.Description
	}
	if in.Category != nil {
		l.Category = *in.Category
		patch["category"] = *in.Category
	}
	if in.Condition != nil {
		l.Condition = *in.Condition
		patch["condition"] = string(*in.Condition)
	}
	if in.Price != nil {
		l.Price = in.Price
		patch["price"] = *in.Price
	}
	if in.Negotiable != nil {
		l.Negotiable = *in.Negotiable
		patch["negotiable"] = *in.Negotiable
	}
	if in.Tags != nil {
		l.Tags = *in.Tags
		patch["tags"] = *in.Tags
	}
	if in.Images != nil {
		l.Images = *in.Images
		patch["images"] = *in.Images
	}
}

func decodeListings(docs []docstore.Document) ([]*models.Listing, error) {
	listings := make([]*models.Listing, 0, len(docs))
	for _, doc := range docs {
		var listing models.Listing
		if err := docstore.Decode(doc, &listing); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	return listings, nil
}

// asCount reads a numeric counter out of a decoded JSON document.
func asCount(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
