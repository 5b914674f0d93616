package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
	"github.com/joao-fontenele/inventory-stock-service/internal/inventory"
)

var _ QuantitySetter = (*inventory.Repository)(nil)

type QuantitySetter interface {
	SetQuantity(ctx context.Context, skuCode string, quantity int) error
}

// StockAdjustmentHandler applies StockAdjustedEvents to the stock store.
type StockAdjustmentHandler struct {
	store  QuantitySetter
	logger *slog.Logger
}

func NewStockAdjustmentHandler(store QuantitySetter, logger *slog.Logger) *StockAdjustmentHandler {
	return &StockAdjustmentHandler{
		store:  store,
		logger: logger,
	}
}

// Handle decodes and applies one event. Malformed or invalid events are logged
// and skipped so one bad message does not block the partition; storage
// failures are returned so the offset is not committed.
func (h *StockAdjustmentHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.StockAdjustedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("dropping malformed stock adjustment", "error", err)
		return nil
	}

	if event.SkuCode == "" || event.Quantity < 0 {
		h.logger.Error("dropping invalid stock adjustment",
			"event_id", event.EventID, "sku_code", event.SkuCode, "quantity", event.Quantity)
		return nil
	}

	if err := h.store.SetQuantity(ctx, event.SkuCode, event.Quantity); err != nil {
		h.logger.Error("failed to apply stock adjustment", "error", err, "event_id", event.EventID, "sku_code", event.SkuCode)
		return fmt.Errorf("apply stock adjustment %s: %w", event.EventID, err)
	}

	h.logger.Info("stock adjusted", "event_id", event.EventID, "sku_code", event.SkuCode, "quantity", event.Quantity)
	return nil
}
