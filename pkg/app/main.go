package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/sharebox/pkg/cache"
	"github.com/ghuser/sharebox/pkg/config"
	"github.com/ghuser/sharebox/pkg/database"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/events"
	"github.com/ghuser/sharebox/pkg/logger"
	"github.com/ghuser/sharebox/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing listing", "listing_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Store          docstore.Store // document store backing all three contexts
	Logger         logger.Logger
	Bus            *events.Bus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
