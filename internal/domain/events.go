package domain

import "time"

type StockAdjustedEvent struct {
	EventID   string    `json:"event_id"`
	SkuCode   string    `json:"sku_code"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}
