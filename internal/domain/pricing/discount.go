package pricing

import "github.com/shopspring/decimal"

// DiscountKind enumerates the supported discount modes. Only one mode is
// active at a time.
type DiscountKind string

const (
	// DiscountNone applies no discount.
	DiscountNone DiscountKind = "none"
	// DiscountPercentage reduces the subtotal by Value percent.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed reduces the total by an absolute currency amount.
	DiscountFixed DiscountKind = "fixed"
)

// Discount is a staff-applied reduction, distinct from coupons. The zero
// value means no discount.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// NoDiscount is the zero discount.
var NoDiscount = Discount{Kind: DiscountNone}

// FixedDiscount returns a fixed-amount discount.
func FixedDiscount(amount decimal.Decimal) Discount {
	return Discount{Kind: DiscountFixed, Value: amount}
}

// PercentageDiscount returns a percentage discount of the subtotal.
func PercentageDiscount(percent decimal.Decimal) Discount {
	return Discount{Kind: DiscountPercentage, Value: percent}
}

// Amount computes the monetary reduction for the given subtotal. The value is
// not validated against subtotal bounds, matching the reference behaviour; a
// negative result is clamped to zero as a safety measure.
func (d Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Kind {
	case DiscountPercentage:
		amount = subtotal.Mul(d.Value).Div(hundred)
	case DiscountFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}
