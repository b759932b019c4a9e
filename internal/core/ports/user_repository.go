package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// UserRepository persists marketplace accounts. Lookups return the document
// regardless of its soft-delete flag; services decide how a deleted record
// maps to the caller.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
