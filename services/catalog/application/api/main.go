package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sharebox/pkg/app"
	"github.com/ghuser/sharebox/pkg/auth"
	"github.com/ghuser/sharebox/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/sharebox/services/catalog/application/services"
)

// CatalogRoutes registers listing endpoints on the provided chi router.
// Browsing is public (identity optional, used only for view counting);
// every mutation requires a session.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Group(func(r chi.Router) {
		if a.SessionStore != nil {
			r.Use(auth.OptionalAuth(a.SessionStore))
		}
		r.Get("/listings", handlers.NewListListingsHandler(svcs, a.Cfg.DefaultPageSize, a.Cfg.MaxPageSize).Execute)
		r.Get("/listings/{listingID}", handlers.NewGetListingHandler(svcs).Execute)
	})

	r.Group(func(r chi.Router) {
		if a.SessionStore != nil {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		}
		r.Post("/listings", handlers.NewPostListingHandler(svcs).Execute)
		r.Get("/listings/mine", handlers.NewListMyListingsHandler(svcs).Execute)
		r.Patch("/listings/{listingID}", handlers.NewPatchListingHandler(svcs).Execute)
		r.Delete("/listings/{listingID}", handlers.NewDeleteListingHandler(svcs).Execute)
		r.Put("/listings/{listingID}/status", handlers.NewPutListingStatusHandler(svcs).Execute)
		r.Post("/listings/{listingID}/like", handlers.NewPostListingLikeHandler(svcs).Execute)
	})
}
