package services

import (
	"github.com/ghuser/sharebox/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Trade *TradeService
}

// Deps are the in-process ports into the other bounded contexts. The cmd
// wiring builds them once so all contexts share one catalog and chat
// instance.
type Deps struct {
	Catalog       Catalog
	Conversations Conversations
}

// New wires the trade application service with infrastructure from the
// Application container and its cross-context ports.
func New(a *app.Application, deps Deps) *Services {
	var bus EventPublisher
	if a.Bus != nil {
		bus = a.Bus
	}
	return &Services{
		Trade: NewTradeService(a.Store, deps.Catalog, deps.Conversations, bus, a.Logger),
	}
}
