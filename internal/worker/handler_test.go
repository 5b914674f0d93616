package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
	"github.com/joao-fontenele/inventory-stock-service/internal/inventory"
)

type recordingStore struct {
	set map[string]int
	err error
}

func (s *recordingStore) SetQuantity(_ context.Context, skuCode string, quantity int) error {
	if s.err != nil {
		return s.err
	}
	if s.set == nil {
		s.set = make(map[string]int)
	}
	s.set[skuCode] = quantity
	return nil
}

func newTestHandler(store QuantitySetter) *StockAdjustmentHandler {
	return NewStockAdjustmentHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func payload(t *testing.T, sku string, qty int) []byte {
	t.Helper()
	data, err := json.Marshal(domain.StockAdjustedEvent{
		EventID:   uuid.NewString(),
		SkuCode:   sku,
		Quantity:  qty,
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)
	return data
}

func TestStockAdjustmentHandler_Handle(t *testing.T) {
	t.Run("applies quantity", func(t *testing.T) {
		store := &recordingStore{}
		h := newTestHandler(store)

		require.NoError(t, h.Handle(context.Background(), payload(t, "iphone_13", 42)))
		assert.Equal(t, map[string]int{"iphone_13": 42}, store.set)
	})

	t.Run("zero quantity is a valid adjustment", func(t *testing.T) {
		store := &recordingStore{}
		h := newTestHandler(store)

		require.NoError(t, h.Handle(context.Background(), payload(t, "iphone_13_red", 0)))
		assert.Equal(t, map[string]int{"iphone_13_red": 0}, store.set)
	})

	t.Run("skips malformed payload", func(t *testing.T) {
		store := &recordingStore{}
		h := newTestHandler(store)

		assert.NoError(t, h.Handle(context.Background(), []byte("{not json")))
		assert.Empty(t, store.set)
	})

	t.Run("skips negative quantity and empty sku", func(t *testing.T) {
		store := &recordingStore{}
		h := newTestHandler(store)

		assert.NoError(t, h.Handle(context.Background(), payload(t, "sku", -3)))
		assert.NoError(t, h.Handle(context.Background(), payload(t, "", 3)))
		assert.Empty(t, store.set)
	})

	t.Run("returns storage errors", func(t *testing.T) {
		h := newTestHandler(&recordingStore{err: inventory.ErrStorageUnavailable})

		err := h.Handle(context.Background(), payload(t, "sku", 1))
		assert.ErrorIs(t, err, inventory.ErrStorageUnavailable)
	})
}
