package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandler_HandleInventory(t *testing.T) {
	t.Run("forwards stock check with query string", func(t *testing.T) {
		inventoryServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/inventory" {
				t.Errorf("expected /api/inventory, got %s", r.URL.Path)
			}
			codes := r.URL.Query()["skuCode"]
			if len(codes) != 2 || codes[0] != "iphone_13" || codes[1] != "iphone_13_red" {
				t.Errorf("unexpected skuCode params: %v", codes)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[{"skuCode":"iphone_13","isInStock":true}]`))
		}))
		defer inventoryServer.Close()

		handler := NewHandler(
			NewServiceProxy(inventoryServer.URL, inventoryServer.Client()),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/inventory?skuCode=iphone_13&skuCode=iphone_13_red", nil)
		rec := httptest.NewRecorder()

		handler.HandleInventory(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Type") != "application/json" {
			t.Errorf("expected application/json, got %s", rec.Header().Get("Content-Type"))
		}
		if rec.Body.String() != `[{"skuCode":"iphone_13","isInStock":true}]` {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("preserves downstream error status", func(t *testing.T) {
		inventoryServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"stock storage unavailable"}`))
		}))
		defer inventoryServer.Close()

		handler := NewHandler(
			NewServiceProxy(inventoryServer.URL, inventoryServer.Client()),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/inventory?skuCode=a", nil)
		rec := httptest.NewRecorder()

		handler.HandleInventory(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}
	})

	t.Run("returns 502 when inventory service unavailable", func(t *testing.T) {
		handler := NewHandler(
			NewServiceProxy("http://localhost:99999", &http.Client{}),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/inventory/items", nil)
		rec := httptest.NewRecorder()

		handler.HandleInventory(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", rec.Code)
		}

		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["error"] != "inventory service unavailable" {
			t.Errorf("expected 'inventory service unavailable', got %s", resp["error"])
		}
	})
}
