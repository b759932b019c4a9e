package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// CartRepository persists the one-cart-per-user basket. Upsert replaces the
// cart keyed by its owner, creating it when absent. A unique index on
// user_id keeps concurrent first-adds from producing two carts.
type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	DeleteByUser(ctx context.Context, userID string) error
}
