// Package menu defines the catalog read model consumed by carts and orders.
package menu

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Item is a catalog entry available for ordering. ImageURL is the single
// canonical image field; source-specific shapes are normalized at the
// ingestion boundary, never inside the pricing engine.
type Item struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	ImageURL string
}

// Filter narrows a catalog listing. Zero-valued fields match everything.
type Filter struct {
	Category string
	Search   string
}

// Repository defines read operations for the menu catalog.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]Item, error)
}
