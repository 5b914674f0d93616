package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joao-fontenele/inventory-stock-service/internal/config"
	"github.com/joao-fontenele/inventory-stock-service/internal/inventory"
	"github.com/joao-fontenele/inventory-stock-service/internal/messaging"
	"github.com/joao-fontenele/inventory-stock-service/internal/telemetry"
	"github.com/joao-fontenele/inventory-stock-service/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequirePostgres(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "stock-adjustment-worker", cfg.ServiceVersion, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	db, err := telemetry.OpenPostgres(cfg.PostgresURL, cfg.PostgresSchema)
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	consumer := messaging.NewConsumer(cfg.KafkaBrokers, cfg.StockTopic, cfg.ConsumerGroup)
	defer func() { _ = consumer.Close() }()

	handler := worker.NewStockAdjustmentHandler(inventory.NewRepository(db), logger)

	logger.Info("starting stock adjustment worker", "brokers", cfg.KafkaBrokers, "topic", cfg.StockTopic)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
