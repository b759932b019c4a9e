package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

// UserService implements profile reads and updates.
type UserService struct {
	repo     ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, notifier: notifier, logger: logger}
}

// GetProfile returns the non-deleted actor's profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces the mutable profile fields. A business name must
// accompany any role that sells; it is cleared for plain buyers.
func (s *UserService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.User, error) {
	if !input.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if input.Role.CanSell() && input.BusinessName == "" {
		return nil, domain.ErrBusinessNameRequired
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.ContactNumber = input.ContactNumber
	user.Address = input.Address
	user.Role = input.Role
	if input.Role.CanSell() {
		user.BusinessName = input.BusinessName
	} else {
		user.BusinessName = ""
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, ports.EmailMessage{
			To:      user.Email,
			Subject: "User Info Updated",
			Body:    "Your user information has been successfully updated.",
		}); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("profile update notification failed")
		}
	}

	return user, nil
}
