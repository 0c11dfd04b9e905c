package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/app"
	"github.com/ghuser/sharebox/pkg/auth"
	catalogsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
	chatsvcs "github.com/ghuser/sharebox/services/chat/application/services"
	"github.com/ghuser/sharebox/services/trade/application/handlers"
	appsvcs "github.com/ghuser/sharebox/services/trade/application/services"
	"github.com/ghuser/sharebox/services/trade/infrastructure"
)

// TradeRoutes registers transaction endpoints on the provided chi router.
// The catalog and chat contexts are reached through in-process adapters; all
// contexts share the same document store, so separate service instances stay
// consistent. Every endpoint requires a session.
func TradeRoutes(r chi.Router, a *app.Application) {
	deps := appsvcs.Deps{
		Catalog:       infrastructure.NewCatalogAdapter(catalogsvcs.New(a).Catalog),
		Conversations: infrastructure.NewConversationAdapter(chatsvcs.New(a).Chat),
	}
	svcs := appsvcs.New(a, deps)

	r.Group(func(r chi.Router) {
		if a.SessionStore != nil {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		}
		r.Get("/transactions", handlers.NewListTransactionsHandler(svcs).Execute)
		r.Post("/transactions", handlers.NewPostTransactionHandler(svcs).Execute)
		r.Get("/transactions/{transactionID}", handlers.NewGetTransactionHandler(svcs).Execute)
		r.Put("/transactions/{transactionID}/status", handlers.NewPutTransactionStatusHandler(svcs).Execute)
	})
}
