package ports

import (
	"context"
	"time"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// PlaceOrderInput carries an order placement. TotalAmount is trusted as-is;
// the server does not recompute it from catalog prices. IdempotencyKey is
// optional; when supplied, a replay returns the originally created order.
type PlaceOrderInput struct {
	UserID         string
	TotalAmount    float64
	IdempotencyKey string
}

// PlaceOrderResult wraps the created (or replayed) order.
type PlaceOrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the idempotency key matched a previous
	// placement and no new order was created.
	AlreadyExisted bool
}

// OrderLineView is an order line resolved against the current catalog.
type OrderLineView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	Quantity  int     `json:"quantity"`
}

// OrderView is an order as presented in listings.
type OrderView struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         []OrderLineView `json:"items"`
	TotalAmount   float64         `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	OrderStatus   string          `json:"order_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderService converts carts into orders and lists them.
type OrderService interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	ListOrders(ctx context.Context, userID string) ([]OrderView, error)
}
