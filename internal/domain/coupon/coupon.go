// Package coupon defines the coupon reference data and registry lookup.
package coupon

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidCoupon is returned when a coupon code is not found in the
// registry. It is a recoverable validation result, not a fatal error.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// Coupon is a registry-looked-up fixed discount identified by a code.
// Codes are stored upper-case and matched case-insensitively.
type Coupon struct {
	Code        string
	AmountOff   decimal.Decimal
	Description string
}

// Registry provides coupon lookup by code. Implementations must treat codes
// case-insensitively.
type Registry interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
}

// Normalize trims surrounding whitespace and upper-cases a coupon code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
