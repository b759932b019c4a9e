package ports

import (
	"context"
	"time"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// CartItemView is a cart line resolved against the current catalog. The line
// total is quantity times the product's current unit price, recomputed on
// every read and never stored, so the displayed total drifts with the catalog.
type CartItemView struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// CartView is the cart as presented to the owner.
type CartView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
}

// CartService defines the per-user basket operations.
type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, userID string) (*CartView, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
}
