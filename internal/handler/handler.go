// Package handler implements the HTTP API on top of the ordering domain.
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/menu"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/order"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pos"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in menu responses.
	// When empty, image paths are returned as stored.
	ImageBaseURL string
}

// Handler exposes the REST API, delegating business logic to the domain
// services and repositories.
type Handler struct {
	catalog      menu.Repository
	coupons      coupon.Registry
	orders       *order.Service
	terminal     *pos.Terminal
	imageBaseURL string
}

// New constructs a Handler with the required domain dependencies.
func New(
	cfg Config,
	catalog menu.Repository,
	coupons coupon.Registry,
	orders *order.Service,
	terminal *pos.Terminal,
) *Handler {
	return &Handler{
		catalog:      catalog,
		coupons:      coupons,
		orders:       orders,
		terminal:     terminal,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes builds the API router. Staff-only endpoints are guarded by auth.
func (h *Handler) Routes(auth *StaffAuth) http.Handler {
	r := chi.NewRouter()

	r.Get("/menu", h.ListMenu)
	r.Get("/coupons/{code}", h.GetCoupon)

	r.Post("/orders", h.PlaceOrder)
	r.Get("/orders/{id}", h.GetOrder)
	r.Get("/orders/{id}/timeline", h.GetTimeline)
	r.Post("/orders/{id}/cancel", h.CancelOrder)
	r.Post("/orders/{id}/return", h.RequestReturn)

	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Post("/orders/{id}/status", h.AdvanceStatus)
		r.Post("/orders/{id}/return/resolve", h.ResolveReturn)
		r.Post("/pos/quote", h.POSQuote)
	})

	return r
}

// imageURL resolves a stored image path against the configured base URL.
func (h *Handler) imageURL(path string) string {
	if h.imageBaseURL == "" || path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return strings.TrimSuffix(h.imageBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
