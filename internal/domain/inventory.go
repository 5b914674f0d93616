package domain

type StockItem struct {
	ID       int64  `json:"id"`
	SkuCode  string `json:"skuCode"`
	Quantity int    `json:"quantity"`
}

// StockStatus is derived per request from a StockItem and never persisted.
type StockStatus struct {
	SkuCode   string `json:"skuCode"`
	IsInStock bool   `json:"isInStock"`
}
