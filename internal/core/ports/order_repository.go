package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// OrderRepository persists immutable order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
