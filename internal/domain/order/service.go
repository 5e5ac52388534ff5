package order

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/coupon"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/menu"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

// Policy holds the lifecycle constants.
type Policy struct {
	// CancelWindow is the grace period after placement during which the
	// customer may cancel an open order.
	CancelWindow time.Duration
}

// DefaultPolicy returns the reference lifecycle policy.
func DefaultPolicy() Policy {
	return Policy{CancelWindow: 5 * time.Minute}
}

// PlaceRequest is the input for placing an order.
type PlaceRequest struct {
	Items           []ItemRef
	CouponCode      string
	PaymentMethod   string
	PaymentCaptured bool
}

// ItemRef references a menu item with the desired quantity and notes.
type ItemRef struct {
	ItemID   string
	Quantity int
	Notes    string
}

// ItemNotFoundError indicates a referenced menu item does not exist.
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return "menu item " + e.ItemID + " not found"
}

// CancelResult reports the outcome of a successful cancellation.
type CancelResult struct {
	Order *Order
	// RefundRequired is set when payment was already captured; executing the
	// refund is the caller's concern.
	RefundRequired bool
}

// Service is the order lifecycle controller. Mutating transitions on the
// same order are serialized through a per-order lock, and every persisted
// update carries a version compare-and-set, so a cancel racing a staff
// status advance can never both apply against a stale read.
type Service struct {
	catalog menu.Repository
	coupons coupon.Registry
	orders  Repository
	pricing pricing.Policy
	policy  Policy
	now     func() time.Time
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewService creates the lifecycle controller with its collaborators.
func NewService(catalog menu.Repository, coupons coupon.Registry, orders Repository, pricingPolicy pricing.Policy, policy Policy) *Service {
	return &Service{
		catalog: catalog,
		coupons: coupons,
		orders:  orders,
		pricing: pricingPolicy,
		policy:  policy,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockOrder returns the mutex serializing transitions for one order id.
func (s *Service) lockOrder(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

// Place validates the request, resolves menu items, prices the order under
// the checkout flow, and persists it in status Placed with a seeded timeline.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]string, len(req.Items))
	for i, ref := range req.Items {
		if ref.Quantity <= 0 {
			return nil, errors.Wrapf(pricing.ErrInvalidArgument, "quantity for item %s", ref.ItemID)
		}
		ids[i] = ref.ItemID
	}

	fetched, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get menu items")
	}
	byID := make(map[string]menu.Item, len(fetched))
	for _, it := range fetched {
		byID[it.ID] = it
	}

	items := make([]pricing.LineItem, len(req.Items))
	for i, ref := range req.Items {
		it, ok := byID[ref.ItemID]
		if !ok {
			return nil, &ItemNotFoundError{ItemID: ref.ItemID}
		}
		items[i] = pricing.LineItem{
			ItemID:    it.ID,
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  ref.Quantity,
			Notes:     ref.Notes,
		}
	}

	discount := pricing.NoDiscount
	couponCode := ""
	if req.CouponCode != "" {
		c, err := s.coupons.FindByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		discount = pricing.FixedDiscount(c.AmountOff)
		couponCode = c.Code
	}

	breakdown, err := pricing.Quote(items, discount, s.pricing, pricing.TaxPreDiscount)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o := &Order{
		ID:              uuid.New().String(),
		Items:           items,
		Status:          StatusPlaced,
		CreatedAt:       now,
		Subtotal:        breakdown.Subtotal,
		DeliveryFee:     breakdown.DeliveryFee,
		Discount:        breakdown.Discount,
		Tax:             breakdown.Tax,
		Total:           breakdown.Total,
		CouponCode:      couponCode,
		PaymentMethod:   req.PaymentMethod,
		PaymentCaptured: req.PaymentCaptured,
		Timeline: []TimelineEvent{{
			Status:      StatusPlaced,
			Description: "Order placed",
			Timestamp:   now,
		}},
		Version: 1,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// Cancel transitions an open order to Cancelled. The order must still be in
// the open group and within the cancel window, and a non-empty reason is
// required. When payment was already captured the result flags a refund for
// the caller to execute.
func (s *Service) Cancel(ctx context.Context, id, reason string) (*CancelResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	mu := s.lockOrder(id)
	mu.Lock()
	defer mu.Unlock()

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.Open() {
		return nil, errors.Wrapf(ErrNotCancellable, "status %s", o.Status)
	}
	if s.now().Sub(o.CreatedAt) > s.policy.CancelWindow {
		return nil, errors.Wrap(ErrNotCancellable, "cancel window expired")
	}

	now := s.now()
	o.Status = StatusCancelled
	o.Timeline = append(o.Timeline, TimelineEvent{
		Status:      StatusCancelled,
		Description: "Cancelled: " + reason,
		Timestamp:   now,
	})
	o.Version++

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	return &CancelResult{Order: o, RefundRequired: o.PaymentCaptured}, nil
}

// RequestReturn attaches a pending return request to a delivered or
// completed order. The top-level status is unchanged; only the timeline
// records the request. An order carrying a return request cannot receive a
// second one.
func (s *Service) RequestReturn(ctx context.Context, id string, reason ReturnReason, description string) (*Order, error) {
	if !reason.Valid() {
		return nil, ErrMissingReason
	}

	mu := s.lockOrder(id)
	mu.Lock()
	defer mu.Unlock()

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.Returnable() {
		return nil, errors.Wrapf(ErrNotReturnable, "status %s", o.Status)
	}
	if o.ReturnRequest != nil {
		return nil, ErrDuplicateReturnRequest
	}

	now := s.now()
	o.ReturnRequest = &ReturnRequest{
		Reason:      reason,
		Description: description,
		Status:      ReturnPending,
		CreatedAt:   now,
	}
	o.Timeline = append(o.Timeline, TimelineEvent{
		Status:      o.Status,
		Description: "Return requested: " + string(reason),
		Timestamp:   now,
	})
	o.Version++

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return o, nil
}

// ResolveReturn updates the return request status and appends a timeline
// event. Approval business logic lives with the staff caller.
func (s *Service) ResolveReturn(ctx context.Context, id, resolution string) (*Order, error) {
	if resolution != ReturnApproved && resolution != ReturnRejected {
		return nil, errors.Wrapf(pricing.ErrInvalidArgument, "resolution %q", resolution)
	}

	mu := s.lockOrder(id)
	mu.Lock()
	defer mu.Unlock()

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.ReturnRequest == nil {
		return nil, ErrNotReturnable
	}

	o.ReturnRequest.Status = resolution
	o.Timeline = append(o.Timeline, TimelineEvent{
		Status:      o.Status,
		Description: "Return " + resolution,
		Timestamp:   s.now(),
	})
	o.Version++

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return o, nil
}

// AdvanceStatus is the staff-driven status update. It accepts any valid
// target status and records the transition on the timeline.
func (s *Service) AdvanceStatus(ctx context.Context, id string, status Status, note string) (*Order, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(pricing.ErrInvalidArgument, "status %q", status)
	}

	mu := s.lockOrder(id)
	mu.Lock()
	defer mu.Unlock()

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	desc := "Status updated to " + string(status)
	if note != "" {
		desc += ": " + note
	}

	o.Status = status
	o.Timeline = append(o.Timeline, TimelineEvent{
		Status:      status,
		Description: desc,
		Timestamp:   s.now(),
	})
	o.Version++

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return o, nil
}

// Get returns an order by id.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// Timeline returns the order's events ordered by timestamp ascending. The
// projection is rebuilt purely from the stored append log.
func (s *Service) Timeline(ctx context.Context, id string) ([]TimelineEvent, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events := make([]TimelineEvent, len(o.Timeline))
	copy(events, o.Timeline)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}
