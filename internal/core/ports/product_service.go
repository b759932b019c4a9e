package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// CreateProductInput carries a new listing. Image is the stored path of an
// already-saved upload, or empty.
type CreateProductInput struct {
	UserID      string
	Name        string
	Quantity    int
	UnitPrice   float64
	Description string
	Category    string
	Image       string
}

// UpdateProductInput carries a partial update: zero-value fields are left
// untouched, mirroring the catalog's merge-on-update behaviour. Numbers use
// pointers so an explicit zero can still be distinguished from "not sent".
type UpdateProductInput struct {
	UserID      string
	ProductID   string
	Name        string
	Quantity    *int
	UnitPrice   *float64
	Description string
	Category    string
	Image       string
}

// ProductService defines the catalog use cases, including the standalone
// stock decrement invoked at order time.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, userID, productID string) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, filter ProductSearchFilter) ([]*domain.Product, error)
	DecrementOnOrder(ctx context.Context, productID string, orderQuantity int) (*domain.Product, error)
}
