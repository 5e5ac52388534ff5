// Package pos implements the staff point-of-sale quote flow: ad-hoc line
// items, staff discounts, post-discount tax, and even split-bill shares.
package pos

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// Sale is a priced POS transaction. SplitShare is zero when the bill is not
// being split.
type Sale struct {
	Breakdown  pricing.Breakdown
	SplitCount int
	SplitShare decimal.Decimal
}

// Terminal prices POS sales under the in-store policy: tax is computed on the
// post-discount subtotal, which intentionally differs from the checkout flow.
type Terminal struct {
	policy pricing.Policy
}

// NewTerminal creates a Terminal with the given pricing policy.
func NewTerminal(policy pricing.Policy) *Terminal {
	return &Terminal{policy: policy}
}

// Quote prices the items with the given staff discount. splitCount 0 or 1
// means no split; a negative count is rejected.
func (t *Terminal) Quote(items []pricing.LineItem, discount pricing.Discount, splitCount int) (*Sale, error) {
	if splitCount < 0 {
		return nil, errors.Wrapf(pricing.ErrInvalidArgument, "split count %d", splitCount)
	}

	breakdown, err := pricing.Quote(items, discount, t.policy, pricing.TaxPostDiscount)
	if err != nil {
		return nil, err
	}

	sale := &Sale{Breakdown: breakdown}
	if splitCount > 1 {
		share, err := pricing.SplitShare(breakdown.Total, splitCount)
		if err != nil {
			return nil, err
		}
		sale.SplitCount = splitCount
		sale.SplitShare = share
	}
	return sale, nil
}
