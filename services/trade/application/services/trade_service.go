package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/logger"
	catalogdomain "github.com/ghuser/sharebox/services/catalog/domain"
	catalogmodels "github.com/ghuser/sharebox/services/catalog/domain/models"
	tradedomain "github.com/ghuser/sharebox/services/trade/domain"
	domainevents "github.com/ghuser/sharebox/services/trade/domain/events"
	"github.com/ghuser/sharebox/services/trade/domain/models"
)

// CollectionTransactions is the document collection holding transactions.
const CollectionTransactions = "transactions"

// defaultLastMessage seeds the conversation preview when the buyer opens a
// transaction without an opening message.
const defaultLastMessage = "Transaction started"

// ListingSummary is the slice of a listing the trade service denormalizes
// onto new transactions.
type ListingSummary struct {
	ID        string
	OwnerID   string
	OwnerName string
	Type      string
	Title     string
	Price     *float64
	Status    string
}

// Catalog is the slice of the catalog service the trade service calls
// in-process: the listing snapshot at creation and the status cascade.
type Catalog interface {
	Summary(ctx context.Context, listingID string) (ListingSummary, error)
	SetListingStatus(ctx context.Context, listingID string, status catalogmodels.Status) error
}

// Conversations seeds the buyer's opening message into the new
// transaction's conversation.
type Conversations interface {
	Append(ctx context.Context, transactionID string, sender auth.Identity, body string) error
}

// EventPublisher is the slice of the event bus this service needs.
// Nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// TradeService owns the negotiation state machine between buyers and
// sellers and cascades every transition into the catalog.
type TradeService struct {
	store         docstore.Store
	catalog       Catalog
	conversations Conversations
	bus           EventPublisher
	log           logger.Logger

	// now must track the clock that resolves the store's server timestamps,
	// since ExpireStale compares it against stored updatedAt values.
	now func() time.Time
}

// NewTradeService wires a TradeService. conversations and bus may be nil.
func NewTradeService(store docstore.Store, catalog Catalog, conversations Conversations, bus EventPublisher, log logger.Logger) *TradeService {
	return &TradeService{store: store, catalog: catalog, conversations: conversations, bus: bus, log: log, now: time.Now}
}

// SetClock replaces the service clock. Test use only; keep it in step with
// the store clock.
func (s *TradeService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateTransactionInput carries a buyer's request to open a negotiation.
type CreateTransactionInput struct {
	ListingID    string
	Message      string
	OfferedPrice *float64
}

// Create opens a negotiation thread against a listing:
//
//  1. insert the transaction with a denormalized listing snapshot,
//  2. cascade the listing to pending,
//  3. seed the buyer's opening message, if any.
//
// Policy and validation failures are rejected before any write. The three
// steps are not one atomic unit: a failure after step 1 surfaces the error
// and leaves a recoverable intermediate state the caller may retry.
func (s *TradeService) Create(ctx context.Context, buyer auth.Identity, in CreateTransactionInput) (*models.Transaction, error) {
	summary, err := s.catalog.Summary(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}

	if buyer.ID == summary.OwnerID {
		return nil, tradedomain.ErrSelfDeal
	}
	if summary.Type == string(catalogmodels.TypeSale) {
		if in.OfferedPrice == nil {
			return nil, tradedomain.ErrMissingOffer
		}
		if *in.OfferedPrice < 0 {
			return nil, tradedomain.ErrInvalidOffer
		}
	}

	lastMessage := in.Message
	if lastMessage == "" {
		lastMessage = defaultLastMessage
	}

	doc := docstore.Document{
		"listingId":           summary.ID,
		"listingTitle":        summary.Title,
		"listingType":         summary.Type,
		"buyerId":             buyer.ID,
		"buyerName":           buyer.DisplayName,
		"sellerId":            summary.OwnerID,
		"sellerName":          summary.OwnerName,
		"status":              string(models.StatusPending),
		"lastMessage":         lastMessage,
		"lastMessageSenderId": buyer.ID,
		"createdAt":           docstore.ServerTimestamp,
		"updatedAt":           docstore.ServerTimestamp,
	}
	if summary.Price != nil {
		doc["listingPrice"] = *summary.Price
	}
	if summary.Type == string(catalogmodels.TypeSale) {
		doc["offeredPrice"] = *in.OfferedPrice
	}

	id, err := s.store.Insert(ctx, CollectionTransactions, doc)
	if err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.cascadeListing(ctx, summary.ID, catalogmodels.StatusPending); err != nil {
		return nil, fmt.Errorf("transaction %s created but listing cascade failed: %w", id, err)
	}

	if in.Message != "" && s.conversations != nil {
		if err := s.conversations.Append(ctx, id, buyer, in.Message); err != nil {
			return nil, fmt.Errorf("transaction %s created but opening message failed: %w", id, err)
		}
	}

	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, tx)
	return tx, nil
}

// Get retrieves a transaction visible only to its two participants.
func (s *TradeService) Get(ctx context.Context, id string, actor auth.Identity) (*models.Transaction, error) {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.Participant(actor.ID) {
		return nil, tradedomain.ErrNotParticipant
	}
	return tx, nil
}

// ListAsBuyer returns all transactions where the user is the buyer,
// newest first.
func (s *TradeService) ListAsBuyer(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return s.listBy(ctx, "buyerId", userID)
}

// ListAsSeller returns all transactions where the user is the seller,
// newest first.
func (s *TradeService) ListAsSeller(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return s.listBy(ctx, "sellerId", userID)
}

// Inbox returns the union of the user's buyer-side and seller-side
// transactions, de-duplicated by id and ordered by most recent activity.
func (s *TradeService) Inbox(ctx context.Context, userID string) ([]*models.Transaction, error) {
	asBuyer, err := s.ListAsBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}
	asSeller, err := s.ListAsSeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(asBuyer)+len(asSeller))
	merged := make([]*models.Transaction, 0, len(asBuyer)+len(asSeller))
	for _, tx := range append(asBuyer, asSeller...) {
		if _, ok := seen[tx.ID]; ok {
			continue
		}
		seen[tx.ID] = struct{}{}
		merged = append(merged, tx)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})
	return merged, nil
}

// SetStatus applies a negotiation transition and cascades the listing:
//
//	approved  → listing pending (already pending after creation)
//	completed → listing sold (sale) or taken (donation)
//	rejected  → listing available
//
// Approval and rejection are the seller's call; completion may come from
// either participant. Illegal transitions are rejected before any write.
func (s *TradeService) SetStatus(ctx context.Context, id string, actor auth.Identity, next models.Status) (*models.Transaction, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", tradedomain.ErrInvalidTransition, next)
	}

	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.Participant(actor.ID) {
		return nil, tradedomain.ErrNotParticipant
	}
	if (next == models.StatusApproved || next == models.StatusRejected) && actor.ID != tx.SellerID {
		return nil, tradedomain.ErrNotSeller
	}
	if !tx.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", tradedomain.ErrInvalidTransition, tx.Status, next)
	}

	err = s.store.Update(ctx, CollectionTransactions, id, docstore.Document{
		"status":    string(next),
		"updatedAt": docstore.ServerTimestamp,
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, tradedomain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction status: %w", err)
	}

	if err := s.cascadeListing(ctx, tx.ListingID, listingStatusFor(next, tx.ListingType)); err != nil {
		return nil, fmt.Errorf("transaction %s moved to %s but listing cascade failed: %w", id, next, err)
	}

	updated, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, updated, tx.Status)
	return updated, nil
}

// ExpireStale rejects pending transactions with no activity since olderThan
// ago and frees their listings. It is a system sweep with no acting user, so
// the seller-only gate does not apply. Returns how many were rejected.
func (s *TradeService) ExpireStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().UTC().Add(-olderThan)
	page, err := s.store.Query(ctx, CollectionTransactions, docstore.Query{
		Filters: []docstore.Filter{{Field: "status", Op: docstore.OpEqual, Value: string(models.StatusPending)}},
		OrderBy: "updatedAt",
	})
	if err != nil {
		return 0, fmt.Errorf("query pending transactions: %w", err)
	}

	expired := 0
	for _, doc := range page.Docs {
		var tx models.Transaction
		if err := docstore.Decode(doc, &tx); err != nil {
			return expired, err
		}
		if !tx.UpdatedAt.Before(cutoff) {
			break // ascending by updatedAt, everything after this is fresher
		}

		err := s.store.Update(ctx, CollectionTransactions, tx.ID, docstore.Document{
			"status":    string(models.StatusRejected),
			"updatedAt": docstore.ServerTimestamp,
		})
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				continue // raced with a delete
			}
			return expired, fmt.Errorf("expire transaction %s: %w", tx.ID, err)
		}
		if err := s.cascadeListing(ctx, tx.ListingID, catalogmodels.StatusAvailable); err != nil {
			return expired, fmt.Errorf("transaction %s expired but listing cascade failed: %w", tx.ID, err)
		}
		expired++

		tx.Status = models.StatusRejected
		s.publishStatusChanged(ctx, &tx, models.StatusPending)
		s.log.InfoContext(ctx, "expired stale transaction", "transaction_id", tx.ID, "listing_id", tx.ListingID)
	}
	return expired, nil
}

func (s *TradeService) listBy(ctx context.Context, field, userID string) ([]*models.Transaction, error) {
	page, err := s.store.Query(ctx, CollectionTransactions, docstore.Query{
		Filters:    []docstore.Filter{{Field: field, Op: docstore.OpEqual, Value: userID}},
		OrderBy:    "createdAt",
		Descending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	txs := make([]*models.Transaction, 0, len(page.Docs))
	for _, doc := range page.Docs {
		var tx models.Transaction
		if err := docstore.Decode(doc, &tx); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}

func (s *TradeService) getTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	doc, err := s.store.Get(ctx, CollectionTransactions, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, tradedomain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	var tx models.Transaction
	if err := docstore.Decode(doc, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// cascadeListing writes the listing status mandated by a negotiation
// transition. A listing deleted mid-negotiation is tolerated: the dangling
// reference is logged, not surfaced.
func (s *TradeService) cascadeListing(ctx context.Context, listingID string, status catalogmodels.Status) error {
	err := s.catalog.SetListingStatus(ctx, listingID, status)
	if err != nil && errors.Is(err, catalogdomain.ErrListingNotFound) {
		s.log.WarnContext(ctx, "listing gone, skipping status cascade", "listing_id", listingID, "status", status)
		return nil
	}
	return err
}

// listingStatusFor maps a transaction transition onto the listing status it
// cascades.
func listingStatusFor(next models.Status, listingType string) catalogmodels.Status {
	switch next {
	case models.StatusCompleted:
		return catalogmodels.ClosedStatusFor(catalogmodels.ListingType(listingType))
	case models.StatusRejected:
		return catalogmodels.StatusAvailable
	default:
		return catalogmodels.StatusPending
	}
}

func (s *TradeService) publishCreated(ctx context.Context, tx *models.Transaction) {
	if s.bus == nil {
		return
	}
	event := domainevents.TransactionCreatedEvent{
		EventID:       uuid.NewString(),
		Version:       1,
		TransactionID: tx.ID,
		ListingID:     tx.ListingID,
		BuyerID:       tx.BuyerID,
		SellerID:      tx.SellerID,
		OccurredAt:    tx.CreatedAt,
	}
	s.publish(ctx, domainevents.TopicTransactionCreated, event.EventID, event)
}

func (s *TradeService) publishStatusChanged(ctx context.Context, tx *models.Transaction, from models.Status) {
	if s.bus == nil {
		return
	}
	event := domainevents.TransactionStatusChangedEvent{
		EventID:       uuid.NewString(),
		Version:       1,
		TransactionID: tx.ID,
		ListingID:     tx.ListingID,
		FromStatus:    string(from),
		ToStatus:      string(tx.Status),
		OccurredAt:    time.Now().UTC(),
	}
	s.publish(ctx, domainevents.TopicTransactionStatusChanged, event.EventID, event)
}

func (s *TradeService) publish(ctx context.Context, topic, eventID string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID)
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		s.log.ErrorContext(ctx, "publish event", "topic", topic, "error", err)
	}
}
