// Package workflows holds the trade context's Temporal workflows. The worker
// binary registers them on TaskQueue when a Temporal server is configured.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/sharebox/services/trade/application/services"
)

// TaskQueue is the queue the maintenance worker polls.
const TaskQueue = "sharebox-trade"

// StaleAfter is how long a transaction may sit pending with no activity
// before the sweep rejects it and frees the listing.
const StaleAfter = 30 * 24 * time.Hour

// ExpiryActivities carries the dependencies the expiry activity runs against.
type ExpiryActivities struct {
	Trade *services.TradeService
}

// ExpireStaleTransactions rejects stale pending transactions and returns how
// many were swept.
func (a *ExpiryActivities) ExpireStaleTransactions(ctx context.Context) (int, error) {
	return a.Trade.ExpireStale(ctx, StaleAfter)
}

// ExpireStaleTransactionsWorkflow runs one sweep. Scheduled via a Temporal
// cron schedule, typically daily.
func ExpireStaleTransactionsWorkflow(ctx workflow.Context) (int, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 3},
	})

	var expired int
	err := workflow.ExecuteActivity(ctx, new(ExpiryActivities).ExpireStaleTransactions).Get(ctx, &expired)
	return expired, err
}

// Register attaches the expiry workflow and its activities to w.
func Register(w worker.Worker, trade *services.TradeService) {
	w.RegisterWorkflow(ExpireStaleTransactionsWorkflow)
	w.RegisterActivity(&ExpiryActivities{Trade: trade})
}
