package infrastructure

import (
	"context"

	"github.com/ghuser/sharebox/pkg/auth"
	catalogsvc "github.com/ghuser/sharebox/services/catalog/application/services"
	catalogmodels "github.com/ghuser/sharebox/services/catalog/domain/models"
	chatsvc "github.com/ghuser/sharebox/services/chat/application/services"
	"github.com/ghuser/sharebox/services/trade/application/services"
)

// CatalogAdapter satisfies the trade service's Catalog port with the
// in-process catalog service.
type CatalogAdapter struct {
	catalog *catalogsvc.CatalogService
}

func NewCatalogAdapter(catalog *catalogsvc.CatalogService) *CatalogAdapter {
	return &CatalogAdapter{catalog: catalog}
}

func (a *CatalogAdapter) Summary(ctx context.Context, listingID string) (services.ListingSummary, error) {
	s, err := a.catalog.Summary(ctx, listingID)
	if err != nil {
		return services.ListingSummary{}, err
	}
	return services.ListingSummary{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		OwnerName: s.OwnerName,
		Type:      string(s.Type),
		Title:     s.Title,
		Price:     s.Price,
		Status:    string(s.Status),
	}, nil
}

func (a *CatalogAdapter) SetListingStatus(ctx context.Context, listingID string, status catalogmodels.Status) error {
	return a.catalog.SetStatus(ctx, listingID, status)
}

// ConversationAdapter satisfies the trade service's Conversations port with
// the in-process chat service.
type ConversationAdapter struct {
	chat *chatsvc.ChatService
}

func NewConversationAdapter(chat *chatsvc.ChatService) *ConversationAdapter {
	return &ConversationAdapter{chat: chat}
}

func (a *ConversationAdapter) Append(ctx context.Context, transactionID string, sender auth.Identity, body string) error {
	_, err := a.chat.Send(ctx, transactionID, sender, body)
	return err
}
