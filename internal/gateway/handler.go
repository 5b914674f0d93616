package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

type Handler struct {
	inventoryProxy *ServiceProxy
	logger         *slog.Logger
}

func NewHandler(inventoryProxy *ServiceProxy, logger *slog.Logger) *Handler {
	return &Handler{
		inventoryProxy: inventoryProxy,
		logger:         logger,
	}
}

// HandleInventory forwards /api/inventory routes unchanged to the inventory service.
func (h *Handler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	resp, err := h.inventoryProxy.ForwardRequest(r.Context(), r, path)
	if err != nil {
		h.logger.Error("failed to forward request", "error", err, "path", path)
		h.writeError(w, http.StatusBadGateway, "inventory service unavailable")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)

	h.logger.Info("request proxied", "method", r.Method, "path", path, "status", resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Error("failed to copy response body", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
