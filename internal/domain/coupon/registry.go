package coupon

import (
	"context"

	"github.com/shopspring/decimal"
)

var _ Registry = (*StaticRegistry)(nil)

// StaticRegistry is an in-memory Registry backed by a fixed code map.
// Lookups are read-only after construction, so it is safe for concurrent use.
type StaticRegistry struct {
	byCode map[string]Coupon
}

// NewStaticRegistry builds a registry from the given coupons. Codes are
// normalized to upper-case on insertion.
func NewStaticRegistry(coupons ...Coupon) *StaticRegistry {
	byCode := make(map[string]Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = Normalize(c.Code)
		byCode[c.Code] = c
	}
	return &StaticRegistry{byCode: byCode}
}

// Defaults returns the built-in coupon set.
func Defaults() []Coupon {
	return []Coupon{
		{Code: "SAVE10", AmountOff: decimal.NewFromInt(10), Description: "10 off your order"},
		{Code: "FOODIE5", AmountOff: decimal.NewFromInt(5), Description: "5 off for foodies"},
		{Code: "PIZZA25", AmountOff: decimal.NewFromInt(25), Description: "25 off pizza night"},
	}
}

// FindByCode looks up a coupon case-insensitively.
// Returns ErrInvalidCoupon when the code is unknown.
func (r *StaticRegistry) FindByCode(_ context.Context, code string) (*Coupon, error) {
	c, ok := r.byCode[Normalize(code)]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	return &c, nil
}
