package domain

import (
	"errors"
	"time"
)

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// OrderStatus tracks fulfilment.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

var ErrOrderNotFound = errors.New("no orders found")

// Order is an immutable snapshot of a cart at placement time. Items are a
// point-in-time copy and are never touched by later catalog changes. The
// total amount is the one the caller supplied; the server does not
// recompute it from catalog prices.
type Order struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	UserID         string        `json:"user_id" bson:"user_id"`
	Items          []LineItem    `json:"items" bson:"items"`
	TotalAmount    float64       `json:"total_amount" bson:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status" bson:"payment_status"`
	OrderStatus    OrderStatus   `json:"order_status" bson:"order_status"`
	IdempotencyKey string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
}
