package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

func saleItems() []pricing.LineItem {
	return []pricing.LineItem{
		{ItemID: "burger", Name: "Smash Burger", UnitPrice: decimal.NewFromInt(200), Quantity: 2},
		{ItemID: "soda", Name: "Cola", UnitPrice: decimal.NewFromInt(50), Quantity: 2},
	}
}

func TestQuote_PostDiscountTax(t *testing.T) {
	term := NewTerminal(pricing.DefaultPolicy())

	// Subtotal 500, 20% off = 100, tax on 400 = 20. Free delivery at 500.
	sale, err := term.Quote(saleItems(), pricing.PercentageDiscount(decimal.NewFromInt(20)), 0)
	require.NoError(t, err)

	b := sale.Breakdown
	assert.True(t, decimal.NewFromInt(500).Equal(b.Subtotal))
	assert.True(t, decimal.NewFromInt(100).Equal(b.Discount))
	assert.True(t, decimal.NewFromInt(20).Equal(b.Tax))
	// 500 + 0 - 100 + 20 = 420
	assert.True(t, decimal.NewFromInt(420).Equal(b.Total))
	assert.Zero(t, sale.SplitCount)
}

func TestQuote_SplitBill(t *testing.T) {
	term := NewTerminal(pricing.DefaultPolicy())

	for _, n := range []int{2, 3, 4, 5} {
		sale, err := term.Quote(saleItems(), pricing.NoDiscount, n)
		require.NoError(t, err)

		total := sale.Breakdown.Total
		recombined := sale.SplitShare.Mul(decimal.NewFromInt(int64(n)))
		diff := recombined.Sub(total).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.05")),
			"split %d drifted by %s", n, diff)
	}
}

func TestQuote_NoSplitForSinglePayer(t *testing.T) {
	term := NewTerminal(pricing.DefaultPolicy())

	sale, err := term.Quote(saleItems(), pricing.NoDiscount, 1)
	require.NoError(t, err)
	assert.Zero(t, sale.SplitCount)
	assert.True(t, sale.SplitShare.IsZero())
}

func TestQuote_NegativeSplit(t *testing.T) {
	term := NewTerminal(pricing.DefaultPolicy())

	_, err := term.Quote(saleItems(), pricing.NoDiscount, -1)
	require.ErrorIs(t, err, pricing.ErrInvalidArgument)
}

func TestQuote_FixedDiscount(t *testing.T) {
	term := NewTerminal(pricing.DefaultPolicy())

	sale, err := term.Quote(saleItems(), pricing.FixedDiscount(decimal.NewFromInt(50)), 0)
	require.NoError(t, err)

	// Tax on 450 = 22.5 rounds to 23. 500 + 0 - 50 + 23 = 473.
	assert.True(t, decimal.NewFromInt(23).Equal(sale.Breakdown.Tax))
	assert.True(t, decimal.NewFromInt(473).Equal(sale.Breakdown.Total))
}
