package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// ProductSearchFilter holds the optional case-insensitive search terms.
// Empty fields are ignored; supplied fields are OR-ed together.
type ProductSearchFilter struct {
	Category     string
	Name         string
	BusinessName string
}

// ProductRepository persists catalog listings. FindByID returns soft-deleted
// documents too; callers check the flag.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ListActive(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, filter ProductSearchFilter) ([]*domain.Product, error)
}
