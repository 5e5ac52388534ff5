package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/menu"
)

// ListMenu returns the catalog, optionally filtered by category and a
// case-insensitive name search.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.catalog.List(r.Context(), menu.Filter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	if err != nil {
		zctx.From(r.Context()).Error("list menu", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, it := range items {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Str(it.ID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
					e.Field("price", func(e *jx.Encoder) { encodeMoney(e, it.Price) })
					e.Field("category", func(e *jx.Encoder) { e.Str(it.Category) })
					e.Field("image_url", func(e *jx.Encoder) { e.Str(h.imageURL(it.ImageURL)) })
				})
			}
		})
	})
}

// GetCoupon validates a coupon code and returns its discount.
func (h *Handler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.FindByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			writeError(w, http.StatusNotFound, "invalid coupon code")
			return
		}
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Str(c.Code) })
			e.Field("amount_off", func(e *jx.Encoder) { encodeMoney(e, c.AmountOff) })
			if c.Description != "" {
				e.Field("description", func(e *jx.Encoder) { e.Str(c.Description) })
			}
		})
	})
}
