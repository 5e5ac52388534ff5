// Package pricing implements the order pricing engine: pure functions that
// turn a line-item collection plus an optional discount into a priced
// breakdown. All functions are deterministic and perform no I/O.
package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned for programmer-error inputs such as a
// negative quantity or a non-positive split count. Ordinary business states
// (empty cart, zero-priced items) never produce an error.
var ErrInvalidArgument = errors.New("invalid argument")

var hundred = decimal.NewFromInt(100)

// LineItem is one catalog item plus quantity within a cart or order.
type LineItem struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// Breakdown is the priced projection of a line-item collection. It is
// recomputed on every change and never persisted independently of the order
// it was computed for.
type Breakdown struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// TaxBase selects which subtotal the tax is computed on. The cart checkout
// flow taxes the pre-discount subtotal while the POS flow taxes the
// post-discount subtotal; the two policies are intentionally distinct.
type TaxBase int

const (
	// TaxPreDiscount computes tax on the subtotal before any discount.
	TaxPreDiscount TaxBase = iota
	// TaxPostDiscount computes tax on the subtotal after the discount.
	TaxPostDiscount
)

// Policy holds the pricing constants recognized by the engine.
type Policy struct {
	// FreeDeliveryThreshold is the subtotal at which delivery becomes free.
	FreeDeliveryThreshold decimal.Decimal
	// FlatDeliveryFee is charged below the free-delivery threshold.
	FlatDeliveryFee decimal.Decimal
	// TaxRate is applied to the tax base and rounded to whole currency units.
	TaxRate decimal.Decimal
	// ClampTotal floors the grand total at zero when a discount exceeds the
	// subtotal. Disabling it reproduces the legacy behaviour where the total
	// could go negative.
	ClampTotal bool
}

// DefaultPolicy returns the reference pricing constants.
func DefaultPolicy() Policy {
	return Policy{
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		FlatDeliveryFee:       decimal.NewFromInt(50),
		TaxRate:               decimal.RequireFromString("0.05"),
		ClampTotal:            true,
	}
}

// Subtotal returns the sum of unit price times quantity across all items.
// An empty collection yields zero. A negative quantity is a programmer error
// and returns ErrInvalidArgument.
func Subtotal(items []LineItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, item := range items {
		if item.Quantity < 0 {
			return decimal.Zero, errors.Wrapf(ErrInvalidArgument, "negative quantity for item %s", item.ItemID)
		}
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum, nil
}

// DeliveryFee returns zero when the subtotal reaches the free-delivery
// threshold, otherwise the flat fee. The fee is monotonically non-increasing
// in the subtotal.
func DeliveryFee(subtotal, threshold, flat decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(threshold) {
		return decimal.Zero
	}
	return flat
}

// Tax returns rate applied to base, rounded to whole currency units.
// The base is explicit so callers can tax the pre- or post-discount subtotal
// per their flow.
func Tax(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Round(0)
}

// Total combines the components: subtotal + deliveryFee - discount + tax.
// No rounding happens here beyond what the inputs already carry.
func Total(subtotal, deliveryFee, discount, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Sub(discount).Add(tax)
}

// SplitShare divides a finalized total evenly across parts payers, rounded to
// 2 decimal places. parts must be at least 1.
func SplitShare(total decimal.Decimal, parts int) (decimal.Decimal, error) {
	if parts < 1 {
		return decimal.Zero, errors.Wrapf(ErrInvalidArgument, "split count must be positive, got %d", parts)
	}
	return total.Div(decimal.NewFromInt(int64(parts))).Round(2), nil
}

// Quote computes the full breakdown for the given items and discount under
// the policy. taxBase selects the checkout (pre-discount) or POS
// (post-discount) tax policy.
func Quote(items []LineItem, discount Discount, p Policy, taxBase TaxBase) (Breakdown, error) {
	subtotal, err := Subtotal(items)
	if err != nil {
		return Breakdown{}, err
	}

	fee := DeliveryFee(subtotal, p.FreeDeliveryThreshold, p.FlatDeliveryFee)
	off := discount.Amount(subtotal)

	base := subtotal
	if taxBase == TaxPostDiscount {
		base = subtotal.Sub(off)
		if base.IsNegative() {
			base = decimal.Zero
		}
	}
	tax := Tax(base, p.TaxRate)

	total := Total(subtotal, fee, off, tax)
	if p.ClampTotal && total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    off,
		Tax:         tax,
		Total:       total,
	}, nil
}
