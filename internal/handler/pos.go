package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// Split bills are limited to small parties at the terminal.
const (
	minSplitParts = 2
	maxSplitParts = 5
)

type posQuoteRequest struct {
	Items []struct {
		ItemID    string          `json:"item_id"`
		Name      string          `json:"name"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Quantity  int             `json:"quantity"`
	} `json:"items"`
	Discount struct {
		Kind  string          `json:"kind"`
		Value decimal.Decimal `json:"value"`
	} `json:"discount"`
	SplitCount int `json:"split_count"`
}

// POSQuote prices an in-store sale with an optional staff discount and an
// optional even bill split.
func (h *Handler) POSQuote(w http.ResponseWriter, r *http.Request) {
	var req posQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SplitCount != 0 && (req.SplitCount < minSplitParts || req.SplitCount > maxSplitParts) {
		writeError(w, http.StatusBadRequest, "split_count must be between 2 and 5")
		return
	}

	items := make([]pricing.LineItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = pricing.LineItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}

	discount := pricing.NoDiscount
	switch req.Discount.Kind {
	case "", string(pricing.DiscountNone):
	case string(pricing.DiscountPercentage):
		discount = pricing.PercentageDiscount(req.Discount.Value)
	case string(pricing.DiscountFixed):
		discount = pricing.FixedDiscount(req.Discount.Value)
	default:
		writeError(w, http.StatusBadRequest, "unknown discount kind")
		return
	}

	sale, err := h.terminal.Quote(items, discount, req.SplitCount)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("breakdown", func(e *jx.Encoder) { encodeBreakdown(e, sale.Breakdown) })
			if sale.SplitCount > 1 {
				e.Field("split_count", func(e *jx.Encoder) { e.Int(sale.SplitCount) })
				e.Field("split_share", func(e *jx.Encoder) { encodeMoney(e, sale.SplitShare) })
			}
		})
	})
}
