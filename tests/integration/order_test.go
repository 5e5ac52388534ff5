//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"testing"
)

const staffKey = "integration-test-key"

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func placeOrder(t *testing.T, req orderRequest) orderResponse {
	t.Helper()

	resp := doPost(t, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	return decodeJSON[orderResponse](t, resp)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{Items: []orderItemRequest{}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{
		Items: []orderItemRequest{{ItemID: "no-such-dish", Quantity: 1}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPlaceOrder_FreeDelivery(t *testing.T) {
	// Margherita 300 + Double Cheese Burger 260 = 560: free delivery,
	// tax 5% of 560 rounded to 28, total 588.
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{
			{ItemID: "margherita", Quantity: 1},
			{ItemID: "double-burger", Quantity: 1},
		},
	})

	if !uuidPattern.MatchString(order.ID) {
		t.Errorf("order id %q is not a uuid", order.ID)
	}
	if order.Status != "Placed" {
		t.Errorf("status: got %q, want Placed", order.Status)
	}
	if order.Subtotal != 560 {
		t.Errorf("subtotal: got %v, want 560", order.Subtotal)
	}
	if order.DeliveryFee != 0 {
		t.Errorf("delivery fee: got %v, want 0", order.DeliveryFee)
	}
	if order.Tax != 28 {
		t.Errorf("tax: got %v, want 28", order.Tax)
	}
	if order.Total != 588 {
		t.Errorf("total: got %v, want 588", order.Total)
	}
}

func TestPlaceOrder_DeliveryFeeBelowThreshold(t *testing.T) {
	// Smash Burger 200 + Cola 50 = 250: fee 50, tax 5% of 300 = 15, total 315.
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{
			{ItemID: "smash-burger", Quantity: 1},
			{ItemID: "cola", Quantity: 1},
		},
	})

	if order.DeliveryFee != 50 {
		t.Errorf("delivery fee: got %v, want 50", order.DeliveryFee)
	}
	if order.Total != 315 {
		t.Errorf("total: got %v, want 315", order.Total)
	}
}

func TestPlaceOrder_WithCoupon(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items:      []orderItemRequest{{ItemID: "pepperoni", Quantity: 2}},
		CouponCode: "save10",
	})

	if order.CouponCode != "SAVE10" {
		t.Errorf("coupon code: got %q, want SAVE10", order.CouponCode)
	}
	if order.Discount != 10 {
		t.Errorf("discount: got %v, want 10", order.Discount)
	}
}

func TestPlaceOrder_InvalidCoupon(t *testing.T) {
	resp := doPost(t, "/api/orders", orderRequest{
		Items:      []orderItemRequest{{ItemID: "cola", Quantity: 1}},
		CouponCode: "TOTALLYBOGUS",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCancelOrder(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items:           []orderItemRequest{{ItemID: "cola", Quantity: 1}},
		PaymentCaptured: true,
	})

	resp := doPost(t, "/api/orders/"+order.ID+"/cancel", map[string]string{"reason": "changed my mind"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[cancelResponse](t, resp)
	if body.Order.Status != "Cancelled" {
		t.Errorf("status: got %q, want Cancelled", body.Order.Status)
	}
	if !body.RefundRequired {
		t.Error("expected refund_required for captured payment")
	}
}

func TestCancelOrder_MissingReason(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{{ItemID: "cola", Quantity: 1}},
	})

	resp := doPost(t, "/api/orders/"+order.ID+"/cancel", map[string]string{"reason": ""})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCancelOrder_Twice(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{{ItemID: "cola", Quantity: 1}},
	})

	resp := doPost(t, "/api/orders/"+order.ID+"/cancel", map[string]string{"reason": "first"})
	resp.Body.Close()

	resp = doPost(t, "/api/orders/"+order.ID+"/cancel", map[string]string{"reason": "second"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAdvanceStatus_RequiresAuth(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{{ItemID: "cola", Quantity: 1}},
	})

	resp := doPost(t, "/api/orders/"+order.ID+"/status", map[string]string{"status": "Ready"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestReturnLifecycle(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{{ItemID: "margherita", Quantity: 1}},
	})

	// Return before delivery is rejected.
	resp := doPost(t, "/api/orders/"+order.ID+"/return", map[string]string{"reason": "wrong_item"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before delivery, got %d", resp.StatusCode)
	}

	resp = doPostWithAuth(t, "/api/orders/"+order.ID+"/status",
		map[string]string{"status": "Delivered"}, staffKey)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance status: expected 200, got %d", resp.StatusCode)
	}

	resp = doPost(t, "/api/orders/"+order.ID+"/return",
		map[string]string{"reason": "quality_issue", "description": "cold pizza"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("request return: expected 200, got %d", resp.StatusCode)
	}
	returned := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()
	if returned.Return == nil || returned.Return.Status != "pending" {
		t.Fatalf("expected pending return request, got %+v", returned.Return)
	}

	resp = doPostWithAuth(t, "/api/orders/"+order.ID+"/return/resolve",
		map[string]string{"resolution": "approved"}, staffKey)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve return: expected 200, got %d", resp.StatusCode)
	}
	resolved := decodeJSON[orderResponse](t, resp)
	if resolved.Return == nil || resolved.Return.Status != "approved" {
		t.Fatalf("expected approved return request, got %+v", resolved.Return)
	}
}

func TestTimeline(t *testing.T) {
	order := placeOrder(t, orderRequest{
		Items: []orderItemRequest{{ItemID: "cola", Quantity: 2}},
	})

	resp := doPostWithAuth(t, "/api/orders/"+order.ID+"/status",
		map[string]string{"status": "Processing"}, staffKey)
	resp.Body.Close()

	resp = doGet(t, "/api/orders/"+order.ID+"/timeline")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	events := decodeJSON[[]timelineEventResponse](t, resp)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Status != "Placed" || events[1].Status != "Processing" {
		t.Errorf("unexpected event order: %+v", events)
	}
}

func TestPOSQuote(t *testing.T) {
	resp := doPostWithAuth(t, "/api/pos/quote", map[string]any{
		"items": []map[string]any{
			{"item_id": "margherita", "name": "Margherita Pizza", "unit_price": 300, "quantity": 2},
		},
		"discount":    map[string]any{"kind": "percentage", "value": 10},
		"split_count": 3,
	}, staffKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	quote := decodeJSON[posQuoteResponse](t, resp)
	// 600 subtotal, 60 off, tax on 540 = 27, total 567, split 3 ways = 189.
	if quote.Breakdown.Total != 567 {
		t.Errorf("total: got %v, want 567", quote.Breakdown.Total)
	}
	if quote.SplitCount != 3 || quote.SplitShare != 189 {
		t.Errorf("split: got %d x %v, want 3 x 189", quote.SplitCount, quote.SplitShare)
	}
}
