package inventory

import "errors"

// ErrStorageUnavailable wraps any failure to reach or query the stock store.
var ErrStorageUnavailable = errors.New("stock storage unavailable")

// ErrInvalidStockItem is returned when a stored item cannot be mapped to a status.
var ErrInvalidStockItem = errors.New("invalid stock item")

var ErrInvalidAdjustment = errors.New("invalid stock adjustment")

var ErrTooManySkuCodes = errors.New("too many sku codes")
