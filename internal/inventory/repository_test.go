package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	id       int64
	skuCode  string
	quantity int
	err      error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	*dest[1].(*string) = r.skuCode
	*dest[2].(*int) = r.quantity
	return nil
}

func TestScanItem(t *testing.T) {
	t.Run("reads columns into item", func(t *testing.T) {
		item, err := scanItem(fakeRow{id: 3, skuCode: "iphone_13", quantity: 100})
		require.NoError(t, err)

		assert.Equal(t, int64(3), item.ID)
		assert.Equal(t, "iphone_13", item.SkuCode)
		assert.Equal(t, 100, item.Quantity)
	})

	t.Run("scan failure is a mapping failure", func(t *testing.T) {
		_, err := scanItem(fakeRow{err: errors.New(`sql: Scan error on column index 1, name "sku_code": converting NULL to string is unsupported`)})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStockItem)
		assert.NotErrorIs(t, err, ErrStorageUnavailable)
	})
}
