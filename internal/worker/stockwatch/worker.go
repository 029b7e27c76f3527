package stockwatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iinventoryrepo"
	"github.com/vkurdin/shop-svc/internal/dal/interfaces/inotifier"
	"github.com/vkurdin/shop-svc/internal/service/models/inventory"
)

// Worker periodically scans inventory for products that have fallen below
// their minimum stock level and publishes informational alerts. Alerts are
// best-effort: a failed publish is logged and retried naturally on the next
// poll, since the row stays below threshold until restocked.
type Worker struct {
	inventoryRepo iinventoryrepo.IInventoryRepository
	notifier      inotifier.INotifier
	pollInterval  time.Duration
	batchSize     int
	recipient     string
	stopCh        chan struct{}
}

// NewWorker creates a new stock watch worker.
func NewWorker(
	inventoryRepo iinventoryrepo.IInventoryRepository,
	notifier inotifier.INotifier,
) *Worker {
	pollIntervalSeconds := viper.GetInt("worker.stockwatch.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 60
	}

	batchSize := viper.GetInt("worker.stockwatch.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	recipient := viper.GetString("worker.stockwatch.recipient")
	if recipient == "" {
		recipient = "inventory@example.com"
	}

	return &Worker{
		inventoryRepo: inventoryRepo,
		notifier:      notifier,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		recipient:     recipient,
		stopCh:        make(chan struct{}),
	}
}

// Start begins polling inventory levels.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Stock watch worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stock watch worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Stock watch worker stopped")

			return
		case <-ticker.C:
			w.checkLevels(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// checkLevels queries low-stock rows and fans out one alert per product.
func (w *Worker) checkLevels(ctx context.Context) {
	low, err := w.inventoryRepo.QueryBelowMinStock(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to query low-stock inventory", "error", err)

		return
	}

	if len(low) == 0 {
		return
	}

	slog.Info("Low-stock products found", "count", len(low))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	for _, inv := range low {
		inv := inv
		g.Go(func() error {
			return w.alert(gCtx, inv)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Failed to publish low-stock alerts", "error", err)
	}
}

func (w *Worker) alert(ctx context.Context, inv inventory.Inventory) error {
	subject := fmt.Sprintf("Low stock: product %s", inv.ProductID)
	body := fmt.Sprintf(
		"Product %s is below its minimum stock level: %d remaining, minimum %d",
		inv.ProductID, inv.Quantity, inv.MinStockLevel,
	)

	return w.notifier.Notify(ctx, "email", w.recipient, subject, body)
}
