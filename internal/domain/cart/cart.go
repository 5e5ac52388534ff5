// Package cart implements the client-side cart as an explicit value object.
// A Cart is single-user state: mutations are last-write-wins and the type is
// not safe for concurrent use.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// Cart holds the current line items and at most one applied coupon.
type Cart struct {
	items  []pricing.LineItem
	coupon *coupon.Coupon
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts an item in the cart. Items with the same ItemID are merged by
// summing quantities. A non-positive quantity is normalized to 1.
func (c *Cart) Add(item pricing.LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ItemID == item.ItemID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes an item from the cart. Removal is always explicit; quantity
// adjustments never remove items implicitly.
func (c *Cart) Remove(itemID string) {
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Increment raises the quantity of an item by one.
func (c *Cart) Increment(itemID string) {
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of an item by one, clamping at 1.
func (c *Cart) Decrement(itemID string) {
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// ApplyCoupon validates code against the registry. On success the new coupon
// replaces any previously applied one. On an unknown code the previously
// applied coupon is cleared AND coupon.ErrInvalidCoupon is returned: a stale
// coupon must never survive a failed attempt to apply a new one.
func (c *Cart) ApplyCoupon(ctx context.Context, reg coupon.Registry, code string) error {
	found, err := reg.FindByCode(ctx, code)
	if err != nil {
		c.coupon = nil
		return err
	}
	c.coupon = found
	return nil
}

// ClearCoupon removes any applied coupon.
func (c *Cart) ClearCoupon() {
	c.coupon = nil
}

// Coupon returns the currently applied coupon, or nil.
func (c *Cart) Coupon() *coupon.Coupon {
	return c.coupon
}

// Items returns a copy of the current line items.
func (c *Cart) Items() []pricing.LineItem {
	items := make([]pricing.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Quote prices the cart under the checkout flow: the coupon amount is the
// discount and tax is computed on the pre-discount subtotal.
func (c *Cart) Quote(p pricing.Policy) (pricing.Breakdown, error) {
	discount := pricing.NoDiscount
	if c.coupon != nil {
		discount = pricing.FixedDiscount(c.coupon.AmountOff)
	}
	return pricing.Quote(c.items, discount, p, pricing.TaxPreDiscount)
}

// Subtotal returns the current pre-discount subtotal.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal, err := pricing.Subtotal(c.items)
	if err != nil {
		return decimal.Zero
	}
	return subtotal
}
