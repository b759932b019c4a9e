package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

type stubOrderService struct {
	placeOrderFn func(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error)
	listOrdersFn func(ctx context.Context, userID string) ([]ports.OrderView, error)
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	return s.placeOrderFn(ctx, input)
}

func (s *stubOrderService) ListOrders(ctx context.Context, userID string) ([]ports.OrderView, error) {
	return s.listOrdersFn(ctx, userID)
}

func TestOrderHandler_PlaceOrder_ForwardsIdempotencyKey(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		placeOrderFn: func(_ context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			if input.UserID != "buyer-1" || input.TotalAmount != 150 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.IdempotencyKey != "retry-abc" {
				t.Fatalf("expected idempotency key forwarded, got %q", input.IdempotencyKey)
			}
			return &ports.PlaceOrderResult{Order: &domain.Order{ID: "order-1", UserID: input.UserID, TotalAmount: input.TotalAmount}}, nil
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"totalAmount":150}`)
	req := httptest.NewRequest(http.MethodPost, "/order/order", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "retry-abc")
	c, rec := authedContext(e, req)

	if err := handler.PlaceOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Order placed successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	order, ok := resp["order"].(map[string]any)
	if !ok || order["id"] != "order-1" {
		t.Fatalf("expected order in response, got %v", resp["order"])
	}
}

func TestOrderHandler_PlaceOrder_ReplayAlsoReturns201(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		placeOrderFn: func(_ context.Context, _ ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
			return &ports.PlaceOrderResult{
				Order:          &domain.Order{ID: "order-1"},
				AlreadyExisted: true,
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"totalAmount":150}`)
	req := httptest.NewRequest(http.MethodPost, "/order/order", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req)

	if err := handler.PlaceOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_PlaceOrder_RejectsMissingTotal(t *testing.T) {
	e := newTestEcho()
	handler := NewOrderHandler(&stubOrderService{})

	body := strings.NewReader(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/order/order", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := authedContext(e, req)

	err := handler.PlaceOrder(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing total, got %v", err)
	}
}

func TestOrderHandler_ListOrders_NotFoundPassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		listOrdersFn: func(_ context.Context, _ string) ([]ports.OrderView, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/order/orders", nil)
	c, _ := authedContext(e, req)

	if err := handler.ListOrders(c); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound passed through, got %v", err)
	}
}
