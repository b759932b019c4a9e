package ports

import (
	"context"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

// SignupInput carries the registration form fields.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// SignupResult is returned after a successful registration. The verification
// token is also emailed to the user; it is returned here so clients can
// surface the verification link immediately.
type SignupResult struct {
	User              *domain.User
	VerificationToken string
}

// AuthService defines registration, verification, login and account
// lifecycle operations.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetAccount(ctx context.Context, userID string) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
