package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/order"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// writeJSON encodes the response body with enc and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, enc func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	enc(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard {code, message} error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// respondDomainError maps domain errors to HTTP error responses. Unknown
// errors become a logged 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrMissingReason),
		errors.Is(err, pricing.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")

	case errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrNotReturnable),
		errors.Is(err, order.ErrDuplicateReturnRequest),
		errors.Is(err, order.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, coupon.ErrInvalidCoupon):
		writeError(w, http.StatusUnprocessableEntity, "invalid coupon code")

	default:
		var nfErr *order.ItemNotFoundError
		if errors.As(err, &nfErr) {
			writeError(w, http.StatusUnprocessableEntity, nfErr.Error())
			return
		}
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// encodeMoney writes a decimal as a JSON number, matching the API's float
// representation.
func encodeMoney(e *jx.Encoder, d decimal.Decimal) {
	e.Float64(d.InexactFloat64())
}

func encodeBreakdown(e *jx.Encoder, b pricing.Breakdown) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("subtotal", func(e *jx.Encoder) { encodeMoney(e, b.Subtotal) })
		e.Field("delivery_fee", func(e *jx.Encoder) { encodeMoney(e, b.DeliveryFee) })
		e.Field("discount", func(e *jx.Encoder) { encodeMoney(e, b.Discount) })
		e.Field("tax", func(e *jx.Encoder) { encodeMoney(e, b.Tax) })
		e.Field("total", func(e *jx.Encoder) { encodeMoney(e, b.Total) })
	})
}

func encodeLineItems(e *jx.Encoder, items []pricing.LineItem) {
	e.Arr(func(e *jx.Encoder) {
		for _, it := range items {
			e.Obj(func(e *jx.Encoder) {
				e.Field("item_id", func(e *jx.Encoder) { e.Str(it.ItemID) })
				e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
				e.Field("unit_price", func(e *jx.Encoder) { encodeMoney(e, it.UnitPrice) })
				e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
				if it.Notes != "" {
					e.Field("notes", func(e *jx.Encoder) { e.Str(it.Notes) })
				}
			})
		}
	})
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(timeFormat)) })
		e.Field("items", func(e *jx.Encoder) { encodeLineItems(e, o.Items) })
		e.Field("subtotal", func(e *jx.Encoder) { encodeMoney(e, o.Subtotal) })
		e.Field("delivery_fee", func(e *jx.Encoder) { encodeMoney(e, o.DeliveryFee) })
		e.Field("discount", func(e *jx.Encoder) { encodeMoney(e, o.Discount) })
		e.Field("tax", func(e *jx.Encoder) { encodeMoney(e, o.Tax) })
		e.Field("total", func(e *jx.Encoder) { encodeMoney(e, o.Total) })
		if o.CouponCode != "" {
			e.Field("coupon_code", func(e *jx.Encoder) { e.Str(o.CouponCode) })
		}
		e.Field("payment_method", func(e *jx.Encoder) { e.Str(o.PaymentMethod) })
		e.Field("payment_captured", func(e *jx.Encoder) { e.Bool(o.PaymentCaptured) })
		if o.ReturnRequest != nil {
			e.Field("return_request", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("reason", func(e *jx.Encoder) { e.Str(string(o.ReturnRequest.Reason)) })
					e.Field("description", func(e *jx.Encoder) { e.Str(o.ReturnRequest.Description) })
					e.Field("status", func(e *jx.Encoder) { e.Str(o.ReturnRequest.Status) })
				})
			})
		}
	})
}

func encodeTimeline(e *jx.Encoder, events []order.TimelineEvent) {
	e.Arr(func(e *jx.Encoder) {
		for _, ev := range events {
			e.Obj(func(e *jx.Encoder) {
				e.Field("status", func(e *jx.Encoder) { e.Str(string(ev.Status)) })
				e.Field("description", func(e *jx.Encoder) { e.Str(ev.Description) })
				e.Field("timestamp", func(e *jx.Encoder) { e.Str(ev.Timestamp.Format(timeFormat)) })
			})
		}
	})
}

const timeFormat = "2006-01-02T15:04:05.000Z07:00"
