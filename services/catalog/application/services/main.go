package services

import (
	"github.com/ghuser/sharebox/pkg/app"
	"github.com/ghuser/sharebox/pkg/cache"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
}

// New wires all catalog application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	var listingCache *cache.ListingCache
	if a.Redis != nil {
		listingCache = cache.NewListingCache(a.Redis)
	}
	var bus EventPublisher
	if a.Bus != nil {
		bus = a.Bus
	}
	return &Services{
		Catalog: NewCatalogService(a.Store, listingCache, bus, a.Logger),
	}
}
