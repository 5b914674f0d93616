package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
)

type StockChecker interface {
	CheckStock(ctx context.Context, skuCodes []string) ([]domain.StockStatus, error)
}

type ItemStore interface {
	ListAll(ctx context.Context) ([]domain.StockItem, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	checker StockChecker
	store   ItemStore
	logger  *slog.Logger
}

func NewHandler(checker StockChecker, store ItemStore, logger *slog.Logger) *Handler {
	return &Handler{
		checker: checker,
		store:   store,
		logger:  logger,
	}
}

// HandleCheckStock serves GET /api/inventory?skuCode=a&skuCode=b. Comma
// separated values are accepted too.
func (h *Handler) HandleCheckStock(w http.ResponseWriter, r *http.Request) {
	skuCodes := parseSkuCodes(r.URL.Query()["skuCode"])

	statuses, err := h.checker.CheckStock(r.Context(), skuCodes)
	if err != nil {
		h.logger.Error("failed to check stock", "error", err, "sku_count", len(skuCodes))
		h.writeFailure(w, err)
		return
	}

	h.logger.Info("stock checked", "requested", len(skuCodes), "found", len(statuses))
	h.writeJSON(w, http.StatusOK, statuses)
}

func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		h.writeFailure(w, err)
		return
	}

	h.logger.Info("items listed", "count", len(items))
	h.writeJSON(w, http.StatusOK, items)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseSkuCodes(values []string) []string {
	var codes []string
	for _, v := range values {
		for _, code := range strings.Split(v, ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTooManySkuCodes) {
		h.writeError(w, http.StatusBadRequest, "too many sku codes")
		return
	}
	if errors.Is(err, ErrStorageUnavailable) {
		h.writeError(w, http.StatusServiceUnavailable, "stock storage unavailable")
		return
	}
	h.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
