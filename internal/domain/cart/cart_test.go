package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

func newItem(id string, price string, qty int) pricing.LineItem {
	return pricing.LineItem{
		ItemID:    id,
		Name:      id,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func testRegistry() coupon.Registry {
	return coupon.NewStaticRegistry(coupon.Defaults()...)
}

func TestCart_AddMergesByItemID(t *testing.T) {
	c := New()
	c.Add(newItem("burger", "200", 1))
	c.Add(newItem("burger", "200", 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCart_DecrementClampsAtOne(t *testing.T) {
	c := New()
	c.Add(newItem("fries", "150", 1))

	c.Decrement("fries")
	c.Decrement("fries")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity, "decrement must clamp, not remove")
}

func TestCart_RemoveIsExplicit(t *testing.T) {
	c := New()
	c.Add(newItem("fries", "150", 1))
	c.Remove("fries")
	assert.True(t, c.Empty())
}

func TestCart_ApplyCoupon_ReplacesPrevious(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.ApplyCoupon(ctx, testRegistry(), "SAVE10"))
	require.NoError(t, c.ApplyCoupon(ctx, testRegistry(), "pizza25"))

	require.NotNil(t, c.Coupon())
	assert.Equal(t, "PIZZA25", c.Coupon().Code)
}

func TestCart_ApplyCoupon_InvalidClearsPrevious(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.ApplyCoupon(ctx, testRegistry(), "SAVE10"))

	err := c.ApplyCoupon(ctx, testRegistry(), "BOGUS")
	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	assert.Nil(t, c.Coupon(), "stale coupon must not survive a failed apply")

	// Idempotent: the same unknown code again yields the same cleared state.
	err = c.ApplyCoupon(ctx, testRegistry(), "BOGUS")
	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
	assert.Nil(t, c.Coupon())
}

func TestCart_Quote_CheckoutFlow(t *testing.T) {
	c := New()
	c.Add(newItem("burger", "200", 2))
	c.Add(newItem("fries", "150", 1))

	b, err := c.Quote(pricing.DefaultPolicy())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(550).Equal(b.Subtotal))
	assert.True(t, decimal.Zero.Equal(b.DeliveryFee))
	assert.True(t, decimal.NewFromInt(578).Equal(b.Total))
}

func TestCart_Quote_WithCoupon(t *testing.T) {
	c := New()
	c.Add(newItem("burger", "200", 2))
	c.Add(newItem("fries", "150", 1))
	require.NoError(t, c.ApplyCoupon(context.Background(), testRegistry(), "SAVE10"))

	b, err := c.Quote(pricing.DefaultPolicy())
	require.NoError(t, err)

	// Tax stays on the pre-discount subtotal: round(550*0.05)=28.
	assert.True(t, decimal.NewFromInt(28).Equal(b.Tax))
	assert.True(t, decimal.NewFromInt(568).Equal(b.Total))
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(newItem("burger", "200", 1))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
