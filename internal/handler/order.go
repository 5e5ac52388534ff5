package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/order"
)

type placeOrderRequest struct {
	Items []struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	} `json:"items"`
	CouponCode      string `json:"coupon_code"`
	PaymentMethod   string `json:"payment_method"`
	PaymentCaptured bool   `json:"payment_captured"`
}

// PlaceOrder creates a new order from menu item references.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refs := make([]order.ItemRef, len(req.Items))
	for i, it := range req.Items {
		refs[i] = order.ItemRef{ItemID: it.ItemID, Quantity: it.Quantity, Notes: it.Notes}
	}

	o, err := h.orders.Place(r.Context(), order.PlaceRequest{
		Items:           refs,
		CouponCode:      req.CouponCode,
		PaymentMethod:   req.PaymentMethod,
		PaymentCaptured: req.PaymentCaptured,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// GetOrder returns a single order by id.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// GetTimeline returns the order's status history, oldest first.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	events, err := h.orders.Timeline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeTimeline(e, events) })
}

// CancelOrder cancels an open order within the cancel window.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.orders.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("order", func(e *jx.Encoder) { encodeOrder(e, res.Order) })
			e.Field("refund_required", func(e *jx.Encoder) { e.Bool(res.RefundRequired) })
		})
	})
}

// RequestReturn attaches a return request to a delivered or completed order.
func (h *Handler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.RequestReturn(r.Context(), chi.URLParam(r, "id"), order.ReturnReason(req.Reason), req.Description)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// AdvanceStatus is the staff endpoint for moving an order through its
// lifecycle.
func (h *Handler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.AdvanceStatus(r.Context(), chi.URLParam(r, "id"), order.Status(req.Status), req.Note)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}

// ResolveReturn is the staff endpoint for approving or rejecting a return.
func (h *Handler) ResolveReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Resolution string `json:"resolution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.ResolveReturn(r.Context(), chi.URLParam(r, "id"), req.Resolution)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeOrder(e, o) })
}
