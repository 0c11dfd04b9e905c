package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/logger"
	chatdomain "github.com/ghuser/sharebox/services/chat/domain"
	domainevents "github.com/ghuser/sharebox/services/chat/domain/events"
	"github.com/ghuser/sharebox/services/chat/domain/models"
)

// transactionsCollection mirrors the trade service's collection name:
// conversations are a sub-collection under the transaction they belong to.
const transactionsCollection = "transactions"

// MessagesCollection returns the sub-collection path holding one
// transaction's messages.
func MessagesCollection(transactionID string) string {
	return transactionsCollection + "/" + transactionID + "/messages"
}

// EventPublisher is the slice of the event bus this service needs.
// Nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// ChatService owns the append-only message log under each transaction and
// its live read subscription.
type ChatService struct {
	store docstore.Store
	bus   EventPublisher
	log   logger.Logger
}

// NewChatService wires a ChatService. bus may be nil.
func NewChatService(store docstore.Store, bus EventPublisher, log logger.Logger) *ChatService {
	return &ChatService{store: store, bus: bus, log: log}
}

// Send appends one text message to a transaction's conversation. The parent
// transaction's lastMessage preview is refreshed afterwards as a separate
// write; losing that write leaves a stale preview, never a lost message, and
// the worker reconciles it from the message.sent event.
func (s *ChatService) Send(ctx context.Context, transactionID string, sender auth.Identity, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, chatdomain.ErrEmptyMessage
	}

	parent, err := s.parent(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !participant(parent, sender.ID) {
		return nil, chatdomain.ErrNotParticipant
	}

	id, err := s.store.Insert(ctx, MessagesCollection(transactionID), docstore.Document{
		"senderId":   sender.ID,
		"senderName": sender.DisplayName,
		"body":       body,
		"type":       string(models.TypeText),
		"createdAt":  docstore.ServerTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	if err := s.store.Update(ctx, transactionsCollection, transactionID, docstore.Document{
		"lastMessage":         body,
		"lastMessageSenderId": sender.ID,
		"updatedAt":           docstore.ServerTimestamp,
	}); err != nil {
		s.log.WarnContext(ctx, "conversation preview update failed",
			"transaction_id", transactionID, "message_id", id, "error", err)
	}

	msg, err := s.getMessage(ctx, transactionID, id)
	if err != nil {
		return nil, err
	}

	s.publishSent(ctx, transactionID, msg)
	return msg, nil
}

// List returns the full conversation of a transaction, oldest first,
// visible only to its participants.
func (s *ChatService) List(ctx context.Context, transactionID string, actor auth.Identity) ([]*models.Message, error) {
	parent, err := s.parent(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !participant(parent, actor.ID) {
		return nil, chatdomain.ErrNotParticipant
	}

	page, err := s.store.Query(ctx, MessagesCollection(transactionID), docstore.Query{
		OrderBy: "createdAt",
	})
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return decodeMessages(page.Docs)
}

// Subscribe streams the full ordered conversation to onChange: once
// immediately, then again after every append. The returned handle is
// idempotent and guarantees no delivery after it returns.
func (s *ChatService) Subscribe(ctx context.Context, transactionID string, actor auth.Identity, onChange func([]*models.Message)) (docstore.Unsubscribe, error) {
	parent, err := s.parent(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !participant(parent, actor.ID) {
		return nil, chatdomain.ErrNotParticipant
	}

	return s.store.Subscribe(ctx, MessagesCollection(transactionID), docstore.Query{
		OrderBy: "createdAt",
	}, func(docs []docstore.Document) {
		msgs, err := decodeMessages(docs)
		if err != nil {
			s.log.Error("decode conversation snapshot", "transaction_id", transactionID, "error", err)
			return
		}
		onChange(msgs)
	})
}

func (s *ChatService) parent(ctx context.Context, transactionID string) (docstore.Document, error) {
	doc, err := s.store.Get(ctx, transactionsCollection, transactionID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, chatdomain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation parent: %w", err)
	}
	return doc, nil
}

func (s *ChatService) getMessage(ctx context.Context, transactionID, id string) (*models.Message, error) {
	doc, err := s.store.Get(ctx, MessagesCollection(transactionID), id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	var msg models.Message
	if err := docstore.Decode(doc, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatService) publishSent(ctx context.Context, transactionID string, msg *models.Message) {
	if s.bus == nil {
		return
	}
	event := domainevents.MessageSentEvent{
		EventID:       uuid.NewString(),
		Version:       1,
		TransactionID: transactionID,
		MessageID:     msg.ID,
		SenderID:      msg.SenderID,
		Body:          msg.Body,
		OccurredAt:    msg.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal message.sent", "error", err)
		return
	}
	m := message.NewMessage(watermill.NewUUID(), payload)
	m.Metadata.Set("event_id", event.EventID)
	m.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, domainevents.TopicMessageSent, m); err != nil {
		s.log.ErrorContext(ctx, "publish message.sent", "transaction_id", transactionID, "error", err)
	}
}

func participant(parent docstore.Document, userID string) bool {
	buyer, _ := parent["buyerId"].(string)
	seller, _ := parent["sellerId"].(string)
	return userID == buyer || userID == seller
}

func decodeMessages(docs []docstore.Document) ([]*models.Message, error) {
	msgs := make([]*models.Message, 0, len(docs))
	for _, doc := range docs {
		var msg models.Message
		if err := docstore.Decode(doc, &msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}
