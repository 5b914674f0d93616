// Command stockctl publishes stock adjustments for the worker to apply.
//
//	stockctl set <sku_code> <quantity>
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/inventory-stock-service/internal/config"
	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
	"github.com/joao-fontenele/inventory-stock-service/internal/messaging"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	timeout := flag.Duration("timeout", 10*time.Second, "publish timeout")
	flag.Parse()
	args := flag.Args()

	if len(args) != 3 || args[0] != "set" {
		logger.Error("usage: stockctl [-timeout d] set <sku_code> <quantity>")
		os.Exit(1)
	}

	skuCode := args[1]
	quantity, err := strconv.Atoi(args[2])
	if err != nil || quantity < 0 || skuCode == "" {
		logger.Error("invalid adjustment", slog.String("sku_code", skuCode), slog.String("quantity", args[2]))
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.StockTopic)
	defer func() { _ = producer.Close() }()

	event := domain.StockAdjustedEvent{
		EventID:   uuid.NewString(),
		SkuCode:   skuCode,
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := producer.PublishStockAdjusted(ctx, event); err != nil {
		logger.Error("failed to publish stock adjustment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("stock adjustment published",
		slog.String("event_id", event.EventID),
		slog.String("sku_code", event.SkuCode),
		slog.Int("quantity", event.Quantity),
	)
}
