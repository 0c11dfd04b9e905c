package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/logger"
	catalogsvc "github.com/ghuser/sharebox/services/catalog/application/services"
	catalogmodels "github.com/ghuser/sharebox/services/catalog/domain/models"
	"github.com/ghuser/sharebox/services/chat/application/services"
	chatdomain "github.com/ghuser/sharebox/services/chat/domain"
	"github.com/ghuser/sharebox/services/chat/domain/models"
	tradesvc "github.com/ghuser/sharebox/services/trade/application/services"
	"github.com/ghuser/sharebox/services/trade/infrastructure"
)

var (
	seller  = auth.Identity{ID: "user-seller", DisplayName: "Sana"}
	buyer   = auth.Identity{ID: "user-buyer", DisplayName: "Ben"}
	outside = auth.Identity{ID: "user-outside", DisplayName: "Omar"}
)

// newConversation stands up the full stack and opens one transaction,
// returning the chat service, the backing store, and the transaction id.
func newConversation(t *testing.T) (*services.ChatService, *docstore.Memory, string) {
	t.Helper()
	ctx := context.Background()
	log := logger.NewDiscard()
	store := docstore.NewMemory()
	catalog := catalogsvc.NewCatalogService(store, nil, nil, log)
	chat := services.NewChatService(store, nil, log)
	trade := tradesvc.NewTradeService(
		store,
		infrastructure.NewCatalogAdapter(catalog),
		infrastructure.NewConversationAdapter(chat),
		nil,
		log,
	)

	listing, err := catalog.Create(ctx, seller, catalogsvc.CreateListingInput{
		Type:        catalogmodels.TypeDonation,
		Title:       "Paperback stack",
		Description: "Assorted novels",
		Category:    "books",
		Condition:   catalogmodels.ConditionFair,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	tx, err := trade.Create(ctx, buyer, tradesvc.CreateTransactionInput{ListingID: listing.ID})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return chat, store, tx.ID
}

func TestChatSend(t *testing.T) {
	ctx := context.Background()

	t.Run("append updates the parent preview", func(t *testing.T) {
		chat, store, txID := newConversation(t)

		msg, err := chat.Send(ctx, txID, buyer, "Is this still available?")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if msg.ID == "" || msg.Type != models.TypeText {
			t.Fatalf("message = %+v, want assigned id and text type", msg)
		}
		if msg.SenderID != buyer.ID || msg.SenderName != buyer.DisplayName {
			t.Fatalf("sender = %s/%s", msg.SenderID, msg.SenderName)
		}
		if msg.CreatedAt.IsZero() {
			t.Fatal("expected store-assigned timestamp")
		}

		parent, err := store.Get(ctx, "transactions", txID)
		if err != nil {
			t.Fatalf("get parent: %v", err)
		}
		if parent["lastMessage"] != "Is this still available?" {
			t.Fatalf("lastMessage = %v", parent["lastMessage"])
		}
		if parent["lastMessageSenderId"] != buyer.ID {
			t.Fatalf("lastMessageSenderId = %v", parent["lastMessageSenderId"])
		}
	})

	t.Run("blank body is rejected", func(t *testing.T) {
		chat, _, txID := newConversation(t)
		if _, err := chat.Send(ctx, txID, buyer, "   "); !errors.Is(err, chatdomain.ErrEmptyMessage) {
			t.Fatalf("error = %v, want ErrEmptyMessage", err)
		}
	})

	t.Run("unknown transaction is rejected", func(t *testing.T) {
		chat, _, _ := newConversation(t)
		if _, err := chat.Send(ctx, "missing", buyer, "hello"); !errors.Is(err, chatdomain.ErrConversationNotFound) {
			t.Fatalf("error = %v, want ErrConversationNotFound", err)
		}
	})

	t.Run("outsiders cannot write", func(t *testing.T) {
		chat, _, txID := newConversation(t)
		if _, err := chat.Send(ctx, txID, outside, "let me in"); !errors.Is(err, chatdomain.ErrNotParticipant) {
			t.Fatalf("error = %v, want ErrNotParticipant", err)
		}
	})
}

func TestChatList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns commit order oldest first", func(t *testing.T) {
		chat, store, txID := newConversation(t)
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tick := 0
		store.SetClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		})

		const k = 7
		for i := 0; i < k; i++ {
			sender := buyer
			if i%2 == 1 {
				sender = seller
			}
			if _, err := chat.Send(ctx, txID, sender, fmt.Sprintf("message %d", i)); err != nil {
				t.Fatalf("send %d: %v", i, err)
			}
		}

		msgs, err := chat.List(ctx, txID, seller)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(msgs) != k {
			t.Fatalf("got %d messages, want %d", len(msgs), k)
		}
		for i, msg := range msgs {
			if msg.Body != fmt.Sprintf("message %d", i) {
				t.Fatalf("position %d holds %q, want commit order", i, msg.Body)
			}
			if i > 0 && msgs[i-1].CreatedAt.After(msg.CreatedAt) {
				t.Fatalf("timestamps not ascending at position %d", i)
			}
		}
	})

	t.Run("outsiders cannot read", func(t *testing.T) {
		chat, _, txID := newConversation(t)
		if _, err := chat.List(ctx, txID, outside); !errors.Is(err, chatdomain.ErrNotParticipant) {
			t.Fatalf("error = %v, want ErrNotParticipant", err)
		}
	})
}

func TestChatSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers an immediate snapshot and then appends", func(t *testing.T) {
		chat, _, txID := newConversation(t)

		var mu sync.Mutex
		var snapshots [][]*models.Message
		unsubscribe, err := chat.Subscribe(ctx, txID, buyer, func(msgs []*models.Message) {
			mu.Lock()
			defer mu.Unlock()
			snapshots = append(snapshots, msgs)
		})
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}
		defer unsubscribe()

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(snapshots) >= 1
		})

		if _, err := chat.Send(ctx, txID, buyer, "first"); err != nil {
			t.Fatalf("send: %v", err)
		}

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			last := snapshots[len(snapshots)-1]
			return len(last) == 1 && last[0].Body == "first"
		})
	})

	t.Run("unsubscribe is idempotent and final", func(t *testing.T) {
		chat, _, txID := newConversation(t)

		var mu sync.Mutex
		deliveries := 0
		unsubscribe, err := chat.Subscribe(ctx, txID, buyer, func([]*models.Message) {
			mu.Lock()
			defer mu.Unlock()
			deliveries++
		})
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return deliveries >= 1
		})

		unsubscribe()
		unsubscribe() // second call is a no-op

		mu.Lock()
		settled := deliveries
		mu.Unlock()

		if _, err := chat.Send(ctx, txID, buyer, "after unsubscribe"); err != nil {
			t.Fatalf("send: %v", err)
		}
		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		if deliveries != settled {
			t.Fatalf("deliveries grew from %d to %d after unsubscribe", settled, deliveries)
		}
	})

	t.Run("outsiders cannot subscribe", func(t *testing.T) {
		chat, _, txID := newConversation(t)
		if _, err := chat.Subscribe(ctx, txID, outside, func([]*models.Message) {}); !errors.Is(err, chatdomain.ErrNotParticipant) {
			t.Fatalf("error = %v, want ErrNotParticipant", err)
		}
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
