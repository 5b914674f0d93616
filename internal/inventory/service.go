package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
)

var tracer = otel.Tracer("inventory/service")

// MaxSkuCodes bounds the distinct codes looked up in one check.
const MaxSkuCodes = 500

// StockFinder is the storage capability the service needs: a bulk lookup by sku code.
type StockFinder interface {
	FindBySkuCodeIn(ctx context.Context, skuCodes []string) ([]domain.StockItem, error)
}

type Service struct {
	finder    StockFinder
	logger    *slog.Logger
	checks    metric.Int64Counter
	requested metric.Int64Histogram
}

func NewService(finder StockFinder, logger *slog.Logger) (*Service, error) {
	meter := otel.Meter("inventory/service")

	checks, err := meter.Int64Counter("inventory.stock.checks",
		metric.WithDescription("Number of stock checks by outcome"),
	)
	if err != nil {
		return nil, err
	}

	requested, err := meter.Int64Histogram("inventory.stock.requested_skus",
		metric.WithDescription("Distinct sku codes requested per stock check"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		finder:    finder,
		logger:    logger,
		checks:    checks,
		requested: requested,
	}, nil
}

// CheckStock reports, for every requested sku code that exists in the store,
// whether its quantity is above zero. Unknown codes are omitted. Any failure
// fails the whole call; no partial result is returned.
func (s *Service) CheckStock(ctx context.Context, skuCodes []string) ([]domain.StockStatus, error) {
	skus := distinct(skuCodes)

	ctx, span := tracer.Start(ctx, "CheckStock")
	defer span.End()
	span.SetAttributes(attribute.Int("inventory.sku_count", len(skus)))

	s.requested.Record(ctx, int64(len(skus)))

	if len(skus) > MaxSkuCodes {
		err := fmt.Errorf("%w: %d distinct codes, limit %d", ErrTooManySkuCodes, len(skus), MaxSkuCodes)
		span.SetStatus(codes.Error, err.Error())
		s.checks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "rejected")))
		return nil, err
	}

	if len(skus) == 0 {
		s.checks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "empty")))
		return []domain.StockStatus{}, nil
	}

	items, err := s.finder.FindBySkuCodeIn(ctx, skus)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.checks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		return nil, err
	}

	statuses := make([]domain.StockStatus, 0, len(items))
	for _, item := range items {
		status, err := toStockStatus(item)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.checks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
			return nil, err
		}
		statuses = append(statuses, status)
	}

	s.checks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	s.logger.DebugContext(ctx, "stock checked", "requested", len(skus), "found", len(statuses))

	return statuses, nil
}

func toStockStatus(item domain.StockItem) (domain.StockStatus, error) {
	if item.SkuCode == "" {
		return domain.StockStatus{}, fmt.Errorf("%w: empty sku code (id %d)", ErrInvalidStockItem, item.ID)
	}
	if item.Quantity < 0 {
		return domain.StockStatus{}, fmt.Errorf("%w: negative quantity %d for sku %q", ErrInvalidStockItem, item.Quantity, item.SkuCode)
	}

	return domain.StockStatus{
		SkuCode:   item.SkuCode,
		IsInStock: item.Quantity > 0,
	}, nil
}

// distinct keeps the first occurrence of every code. Codes that cannot be
// stored in a UTF-8 text column (invalid UTF-8, NUL bytes) never match an
// item and are dropped.
func distinct(skuCodes []string) []string {
	seen := make(map[string]struct{}, len(skuCodes))
	out := make([]string, 0, len(skuCodes))
	for _, code := range skuCodes {
		if !storable(code) {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func storable(code string) bool {
	return utf8.ValidString(code) && !strings.ContainsRune(code, 0)
}
