package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields. BusinessName is
// required when Role implies selling and cleared otherwise.
type UpdateProfileInput struct {
	UserID        string
	FirstName     string
	LastName      string
	ContactNumber string
	Address       string
	Role          domain.Role
	BusinessName  string
}

// UserService exposes profile reads and updates for the authenticated actor.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}
