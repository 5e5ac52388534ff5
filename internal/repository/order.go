package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/order"
	"github.com/mrbabu07/FoodBuzz-Resturant-sub003/internal/domain/pricing"
)

const (
	createOrderSQL = `INSERT INTO orders (id, items, status, subtotal, delivery_fee, discount,
		tax, total, coupon_code, payment_method, payment_captured, return_request, timeline,
		version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	getOrderByIDSQL = `SELECT id, items, status, subtotal, delivery_fee, discount,
		tax, total, coupon_code, payment_method, payment_captured, return_request, timeline,
		version, created_at
		FROM orders WHERE id = $1`

	updateOrderSQL = `UPDATE orders
		SET status = $2, return_request = $3, timeline = $4, version = $5
		WHERE id = $1 AND version = $6`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Items,
// the return request, and the timeline are serialized to JSONB columns.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, returnJSON, timelineJSON, err := marshalOrderDocs(o)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, itemsJSON, string(o.Status), o.Subtotal, o.DeliveryFee, o.Discount,
		o.Tax, o.Total, o.CouponCode, o.PaymentMethod, o.PaymentCaptured,
		returnJSON, timelineJSON, o.Version, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID loads a single order. Returns order.ErrNotFound when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return o, nil
}

// Update persists a transition with a version compare-and-set: the write only
// applies when the stored row still holds the version the transition was
// computed from. Returns order.ErrVersionConflict on a lost race.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	_, returnJSON, timelineJSON, err := marshalOrderDocs(o)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, updateOrderSQL,
		o.ID, string(o.Status), returnJSON, timelineJSON, o.Version, o.Version-1,
	)
	if err != nil {
		return fmt.Errorf("updating order %q: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrVersionConflict
	}
	return nil
}

func marshalOrderDocs(o *order.Order) (items, returnReq, timeline []byte, err error) {
	items, err = json.Marshal(o.Items)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshaling order items: %w", err)
	}
	if o.ReturnRequest != nil {
		returnReq, err = json.Marshal(o.ReturnRequest)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshaling return request: %w", err)
		}
	}
	timeline, err = json.Marshal(o.Timeline)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshaling timeline: %w", err)
	}
	return items, returnReq, timeline, nil
}

func scanOrder(row pgx.CollectableRow) (*order.Order, error) {
	var (
		o            order.Order
		status       string
		itemsJSON    []byte
		returnJSON   []byte
		timelineJSON []byte
	)
	err := row.Scan(
		&o.ID, &itemsJSON, &status, &o.Subtotal, &o.DeliveryFee, &o.Discount,
		&o.Tax, &o.Total, &o.CouponCode, &o.PaymentMethod, &o.PaymentCaptured,
		&returnJSON, &timelineJSON, &o.Version, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Status = order.Status(status)
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling order items: %w", err)
	}
	if len(returnJSON) > 0 {
		o.ReturnRequest = &order.ReturnRequest{}
		if err := json.Unmarshal(returnJSON, o.ReturnRequest); err != nil {
			return nil, fmt.Errorf("unmarshaling return request: %w", err)
		}
	}
	if len(timelineJSON) > 0 {
		if err := json.Unmarshal(timelineJSON, &o.Timeline); err != nil {
			return nil, fmt.Errorf("unmarshaling timeline: %w", err)
		}
	}
	if o.Items == nil {
		o.Items = []pricing.LineItem{}
	}
	return &o, nil
}
