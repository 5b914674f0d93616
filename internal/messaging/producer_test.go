package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
)

func TestStockAdjustedMessage(t *testing.T) {
	event := domain.StockAdjustedEvent{
		EventID:   "7f1c2a4e-0d55-4a0c-9a0b-2f3c8d9e1b11",
		SkuCode:   "iphone_13_red",
		Quantity:  12,
		Timestamp: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	msg, err := stockAdjustedMessage(event)
	require.NoError(t, err)

	assert.Equal(t, "iphone_13_red", string(msg.Key))
	assert.Equal(t, event.EventID, headerCarrier{msg: &msg}.Get(eventIDHeader))

	var decoded domain.StockAdjustedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, event.SkuCode, decoded.SkuCode)
	assert.Equal(t, event.Quantity, decoded.Quantity)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}

func TestAdjustmentAttributes(t *testing.T) {
	t.Run("includes sku and event id", func(t *testing.T) {
		msg, err := stockAdjustedMessage(domain.StockAdjustedEvent{EventID: "evt-1", SkuCode: "iphone_13", Quantity: 1})
		require.NoError(t, err)

		attrs := attribute.NewSet(adjustmentAttributes(msg)...)

		sku, ok := attrs.Value("inventory.sku_code")
		require.True(t, ok)
		assert.Equal(t, "iphone_13", sku.AsString())

		id, ok := attrs.Value("inventory.event_id")
		require.True(t, ok)
		assert.Equal(t, "evt-1", id.AsString())
	})

	t.Run("omits event id when header missing", func(t *testing.T) {
		msg, err := stockAdjustedMessage(domain.StockAdjustedEvent{SkuCode: "iphone_13"})
		require.NoError(t, err)
		msg.Headers = nil

		attrs := attribute.NewSet(adjustmentAttributes(msg)...)

		_, ok := attrs.Value("inventory.event_id")
		assert.False(t, ok)
	})
}
