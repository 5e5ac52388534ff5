// Package order implements the order lifecycle controller: the state machine
// governing which transitions are legal, and the append-only timeline each
// accepted transition produces.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// Status is an order's lifecycle state. Delivered, Completed and Cancelled
// are terminal for the cancel path; returns may only be requested from
// Delivered or Completed.
type Status string

const (
	StatusPlaced         Status = "Placed"
	StatusScheduled      Status = "Scheduled"
	StatusPending        Status = "Pending"
	StatusProcessing     Status = "Processing"
	StatusReady          Status = "Ready"
	StatusOutForDelivery Status = "OutForDelivery"
	StatusDelivered      Status = "Delivered"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusScheduled, StatusPending, StatusProcessing,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCompleted,
		StatusCancelled:
		return true
	}
	return false
}

// Open reports whether the order is still in the initial open group from
// which cancellation is allowed.
func (s Status) Open() bool {
	return s == StatusPlaced || s == StatusScheduled || s == StatusPending
}

// Returnable reports whether a return may be requested from this status.
func (s Status) Returnable() bool {
	return s == StatusDelivered || s == StatusCompleted
}

// ReturnReason enumerates the accepted reasons on a return request.
type ReturnReason string

const (
	ReturnWrongItem    ReturnReason = "wrong_item"
	ReturnQualityIssue ReturnReason = "quality_issue"
	ReturnLateDelivery ReturnReason = "late_delivery"
	ReturnOther        ReturnReason = "other"
)

// Valid reports whether r is a known return reason.
func (r ReturnReason) Valid() bool {
	switch r {
	case ReturnWrongItem, ReturnQualityIssue, ReturnLateDelivery, ReturnOther:
		return true
	}
	return false
}

// Return request resolution states.
const (
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
)

// ReturnRequest is attached to exactly one order and created at most once.
type ReturnRequest struct {
	Reason      ReturnReason `json:"reason"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TimelineEvent records one accepted state transition. Events are
// append-only and ordered by timestamp ascending.
type TimelineEvent struct {
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Order is created at checkout and mutated only through defined transitions.
// Orders are never deleted, only transitioned to a terminal state.
type Order struct {
	ID              string
	Items           []pricing.LineItem
	Status          Status
	CreatedAt       time.Time
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Discount        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	CouponCode      string
	PaymentMethod   string
	PaymentCaptured bool
	ReturnRequest   *ReturnRequest
	Timeline        []TimelineEvent

	// Version is the optimistic-concurrency token checked on every update.
	Version int
}

// Sentinel errors for lifecycle guards. A rejected transition leaves the
// order untouched: no status change, no timeline event.
var (
	ErrEmptyOrder             = errors.New("order has no items")
	ErrNotCancellable         = errors.New("order cannot be cancelled")
	ErrNotReturnable          = errors.New("order is not eligible for return")
	ErrDuplicateReturnRequest = errors.New("order already has a return request")
	ErrMissingReason          = errors.New("a reason is required")
	ErrNotFound               = errors.New("order not found")
	ErrVersionConflict        = errors.New("order was modified concurrently")
)

// Repository defines persistence operations for orders. Update must apply
// the write only when the stored version matches o.Version-1 (compare and
// set) and return ErrVersionConflict otherwise.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
}
