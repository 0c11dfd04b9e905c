package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/sharebox/pkg/app"
	"github.com/ghuser/sharebox/pkg/cache"
	"github.com/ghuser/sharebox/pkg/config"
	"github.com/ghuser/sharebox/pkg/database"
	"github.com/ghuser/sharebox/pkg/docstore"
	"github.com/ghuser/sharebox/pkg/events"
	"github.com/ghuser/sharebox/pkg/logger"
	"github.com/ghuser/sharebox/pkg/telemetry"
	catalogEvents "github.com/ghuser/sharebox/services/catalog/domain/events"
	chatEvents "github.com/ghuser/sharebox/services/chat/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	store := docstore.NewPostgres(pool, log)

	bus, err := events.NewBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer bus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()
	//
	//w := worker.New(temporalClient.Client, tradeworkflows.TaskQueue, worker.Options{})
	//tradeworkflows.Register(w, tradeServices.Trade)
	//go func() {
	//	if err := w.Run(worker.InterruptCh()); err != nil {
	//		log.Error("temporal worker stopped", "error", err)
	//	}
	//}()

	appConfig := &app.Application{
		Cfg:    cfg,
		Db:     pool,
		Store:  store,
		Logger: log,
		Bus:    bus,
		Redis:  redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// Bus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		catalogEvents.TopicListingCreated: handleListingCreated(a),
		chatEvents.TopicMessageSent:       handleMessageSent(a),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.Bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		registered = append(registered, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handleListingCreated returns a handler for listing.created events.
// Handlers must be idempotent — the bus retries up to 3× on failure.
// Warms the Redis read-model cache so listing summaries are served from cache.
func handleListingCreated(a *app.Application) func(context.Context, *message.Message) error {
	listingCache := cache.NewListingCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.ListingCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := listingCache.Set(ctx, &cache.CachedListing{
			ID:        evt.ListingID,
			OwnerID:   evt.OwnerID,
			OwnerName: evt.OwnerName,
			Type:      evt.Type,
			Title:     evt.Title,
			Category:  evt.Category,
			Condition: evt.Condition,
			Status:    evt.Status,
			Price:     evt.Price,
			CreatedAt: evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for listing.created",
				"listing_id", evt.ListingID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "listing_id", evt.ListingID)
		}

		return nil
	}
}

// handleMessageSent returns a handler for message.sent events. It re-applies
// the conversation preview on the parent transaction, reconciling the case
// where the inline preview write was lost after the message append.
// Re-application is idempotent: it only writes when the stored preview lags.
func handleMessageSent(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt chatEvents.MessageSentEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		err := a.Store.AtomicUpdate(ctx, "transactions", evt.TransactionID, func(doc docstore.Document) (docstore.Document, error) {
			updatedAt, _ := doc["updatedAt"].(string)
			if updatedAt >= docstore.FormatTime(evt.OccurredAt) {
				return doc, nil // preview already current
			}
			doc["lastMessage"] = evt.Body
			doc["lastMessageSenderId"] = evt.SenderID
			doc["updatedAt"] = docstore.FormatTime(evt.OccurredAt)
			return doc, nil
		})
		if errors.Is(err, docstore.ErrNotFound) {
			// Transaction deleted since; nothing to reconcile.
			a.Logger.WarnContext(ctx, "message.sent for missing transaction",
				"transaction_id", evt.TransactionID)
			return nil
		}
		return err
	}
}
