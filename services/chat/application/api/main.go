package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/app"
	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/services/chat/application/handlers"
	appsvcs "github.com/ghuser/sharebox/services/chat/application/services"
)

// ChatRoutes registers conversation endpoints on the provided chi router.
// Conversations are addressed through their parent transaction. Every
// endpoint requires a session.
func ChatRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		if a.SessionStore != nil {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		}
		r.Get("/transactions/{transactionID}/messages", handlers.NewListMessagesHandler(svcs).Execute)
		r.Post("/transactions/{transactionID}/messages", handlers.NewPostMessageHandler(svcs).Execute)
		r.Get("/transactions/{transactionID}/messages/stream", handlers.NewStreamMessagesHandler(svcs).Execute)
	})
}
