package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
)

var (
	_ StockFinder = (*Repository)(nil)
	_ ItemStore   = (*Repository)(nil)
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one items row. A row that does not fit StockItem is a
// mapping failure, not an outage.
func scanItem(row rowScanner) (domain.StockItem, error) {
	var item domain.StockItem
	if err := row.Scan(&item.ID, &item.SkuCode, &item.Quantity); err != nil {
		return domain.StockItem{}, fmt.Errorf("%w: scan item: %w", ErrInvalidStockItem, err)
	}
	return item, nil
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindBySkuCodeIn returns the stored items whose sku code is in skuCodes. The
// lookup runs in a read-only repeatable-read transaction so every row comes
// from the same snapshot.
func (r *Repository) FindBySkuCodeIn(ctx context.Context, skuCodes []string) ([]domain.StockItem, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrStorageUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, sku_code, quantity
		FROM items
		WHERE sku_code = ANY($1)
	`, pq.Array(skuCodes))
	if err != nil {
		return nil, fmt.Errorf("%w: query items: %w", ErrStorageUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	items := []domain.StockItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate items: %w", ErrStorageUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit transaction: %w", ErrStorageUnavailable, err)
	}

	return items, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.StockItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sku_code, quantity
		FROM items
		ORDER BY sku_code
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", ErrStorageUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	items := []domain.StockItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate items: %w", ErrStorageUnavailable, err)
	}

	return items, nil
}

// SetQuantity creates the item if it does not exist, otherwise overwrites its quantity.
func (r *Repository) SetQuantity(ctx context.Context, skuCode string, quantity int) error {
	if skuCode == "" || quantity < 0 {
		return fmt.Errorf("%w: sku %q quantity %d", ErrInvalidAdjustment, skuCode, quantity)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (sku_code, quantity)
		VALUES ($1, $2)
		ON CONFLICT (sku_code)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, skuCode, quantity)
	if err != nil {
		return fmt.Errorf("%w: set quantity: %w", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
