package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestProduct(options []SupplyOption) *Product {
	p, err := NewProduct("Rice 5kg", "/uploads/rice.jpg", "pcs", "Grains", dec("120"), decimal.Zero, options)
	if err != nil {
		panic(err)
	}
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("derives qty from supply options", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
			{CostPrice: dec("15"), Stock: dec("5")},
		})
		assert.True(t, p.Qty.Equal(dec("7")))
	})

	t.Run("keeps explicit qty without options", func(t *testing.T) {
		p, err := NewProduct("Salt", "/uploads/salt.jpg", "", "", dec("20"), dec("30"), nil)
		require.NoError(t, err)
		assert.True(t, p.Qty.Equal(dec("30")))
		assert.Equal(t, "pcs", p.Unit)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "", "pcs", "", dec("10"), decimal.Zero, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Salt", "", "pcs", "", dec("-1"), decimal.Zero, nil)
		assert.Error(t, err)
	})
}

func TestProductConsume(t *testing.T) {
	t.Run("walks batches in list order", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
			{CostPrice: dec("15"), Stock: dec("5")},
		})

		unitCost, err := p.Consume(dec("4"))
		require.NoError(t, err)

		// 2 units at 10 plus 2 units at 15 over 4 units
		assert.True(t, unitCost.Equal(dec("12.5")), "got %s", unitCost)
		assert.True(t, p.SupplyOptions[0].Stock.IsZero())
		assert.True(t, p.SupplyOptions[1].Stock.Equal(dec("3")))
		assert.True(t, p.Qty.Equal(dec("3")))
	})

	t.Run("single batch covers the whole line", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("8"), Stock: dec("10")},
		})

		unitCost, err := p.Consume(dec("3"))
		require.NoError(t, err)
		assert.True(t, unitCost.Equal(dec("8")))
		assert.True(t, p.Qty.Equal(dec("7")))
	})

	t.Run("skips exhausted batches", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: decimal.Zero},
			{CostPrice: dec("12"), Stock: dec("6")},
		})

		unitCost, err := p.Consume(dec("4"))
		require.NoError(t, err)
		assert.True(t, unitCost.Equal(dec("12")))
	})

	t.Run("keeps cached total equal to batch sum", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
			{CostPrice: dec("15"), Stock: dec("5")},
		})

		_, err := p.Consume(dec("4"))
		require.NoError(t, err)
		assert.True(t, p.Qty.Equal(p.TotalBatchStock()))
	})

	t.Run("rejects insufficient stock without mutating", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
		})

		_, err := p.Consume(dec("5"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Rice 5kg")
		assert.True(t, p.Qty.Equal(dec("2")))
		assert.True(t, p.SupplyOptions[0].Stock.Equal(dec("2")))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
		})
		_, err := p.Consume(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("shortfall falls back to first batch cost", func(t *testing.T) {
		// Cached total claims more than the ledger holds.
		p := newTestProduct([]SupplyOption{
			{CostPrice: dec("10"), Stock: dec("2")},
		})
		p.Qty = dec("5")

		unitCost, err := p.Consume(dec("4"))
		require.NoError(t, err)

		// 2 units at ledger cost 10, 2 shortfall units at first batch cost 10
		assert.True(t, unitCost.Equal(dec("10")))
		assert.True(t, p.Qty.Equal(dec("1")))
	})

	t.Run("shortfall with empty ledger costs zero", func(t *testing.T) {
		p := newTestProduct(nil)
		p.Qty = dec("3")

		unitCost, err := p.Consume(dec("2"))
		require.NoError(t, err)
		assert.True(t, unitCost.IsZero())
	})
}

func TestReplaceSupplyOptions(t *testing.T) {
	p := newTestProduct([]SupplyOption{
		{CostPrice: dec("10"), Stock: dec("2")},
	})

	p.ReplaceSupplyOptions([]SupplyOption{
		{CostPrice: dec("9"), Stock: dec("12")},
		{CostPrice: dec("11"), Stock: dec("8")},
	})

	assert.True(t, p.Qty.Equal(dec("20")))
	assert.Len(t, p.SupplyOptions, 2)
}
