package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkurdin/shop-svc/internal/dal/postgres"
	"github.com/vkurdin/shop-svc/internal/dal/rabbitmq"
	"github.com/vkurdin/shop-svc/internal/dal/redis"
	inventoryrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/inventory/postgres"
	notificationrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/notification/rabbitmq"
	"github.com/vkurdin/shop-svc/internal/dal/repositories/product/cached"
	productrepo "github.com/vkurdin/shop-svc/internal/dal/repositories/product/postgres"
	"github.com/vkurdin/shop-svc/internal/otel"
	"github.com/vkurdin/shop-svc/internal/service/services/ordersvc"
	"github.com/vkurdin/shop-svc/internal/service/services/paymentsvc"
	"github.com/vkurdin/shop-svc/internal/service/services/validation"
	httptransport "github.com/vkurdin/shop-svc/internal/transport/http"
	"github.com/vkurdin/shop-svc/internal/worker/stockwatch"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	stockWorker    *stockwatch.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	redisClient    *redis.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()
	redisClient := redis.MustNewClient()

	pool := postgresClient.Pool()

	productRepository := cached.NewCachedProductRepository(
		productrepo.NewPostgresProductRepository(pool),
		redisClient,
	)
	inventoryRepository := inventoryrepo.NewPostgresInventoryRepository(pool)
	notifier := notificationrepo.NewRabbitMQNotifier(rabbitMqClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithValidator(validation.NewValidator(productRepository, inventoryRepository)),
		ordersvc.WithPaymentGateway(paymentsvc.NewGateway()),
		ordersvc.WithNotifier(notifier),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	stockWorker := stockwatch.NewWorker(inventoryRepository, notifier)

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		stockWorker:    stockWorker,
		postgresClient: postgresClient,
		rabbitMqClient: rabbitMqClient,
		redisClient:    redisClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting stock watch worker")
		a.stockWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down components sequentially: worker, HTTP server,
// RabbitMQ, Redis, PostgreSQL, and the tracer provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.stockWorker.Stop()
	slog.Info("Stock watch worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	} else {
		slog.Info("Redis connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider close error", "error", err)
	} else {
		slog.Info("Otel trace provider closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
