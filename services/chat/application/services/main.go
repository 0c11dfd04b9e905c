package services

import (
	"github.com/ghuser/sharebox/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Chat *ChatService
}

// New wires the chat application service with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	var bus EventPublisher
	if a.Bus != nil {
		bus = a.Bus
	}
	return &Services{
		Chat: NewChatService(a.Store, bus, a.Logger),
	}
}
