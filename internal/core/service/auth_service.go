package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

const verificationPurpose = "email_verification"

// AuthConfig groups the token settings for AuthService.
type AuthConfig struct {
	// JWTSecret signs login tokens; EmailSecret signs verification tokens.
	// Separate secrets keep a leaked verification link from minting sessions.
	JWTSecret   string
	EmailSecret string
	// FrontendURL is the base for the verification link placed in emails.
	FrontendURL string
	TokenTTL    time.Duration
	VerifyTTL   time.Duration
}

// AuthService implements registration with email verification, login, and
// account lifecycle.
type AuthService struct {
	repo     ports.UserRepository
	notifier ports.Notifier
	cfg      AuthConfig
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, notifier ports.Notifier, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.VerifyTTL <= 0 {
		cfg.VerifyTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, notifier: notifier, cfg: cfg, logger: logger}
}

// Signup registers a new unverified account and dispatches the verification
// and welcome emails. The account starts unverified; login is refused until
// VerifyEmail flips the flag.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SignupResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if !passwordMeetsPolicy(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verificationToken, err := s.generateVerificationToken(input.Email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:             input.Email,
		PasswordHash:      string(hash),
		IsEmailVerified:   false,
		VerificationToken: verificationToken,
		RegistrationDate:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.cfg.FrontendURL, verificationToken)
	s.notify(ctx, created.Email, "Email Verification",
		"Please verify your email by clicking this link: "+verificationURL)
	s.notify(ctx, created.Email, "Registration Successful",
		fmt.Sprintf("Thank you for registering, %s. Please verify your email.", created.Email))

	s.logger.Info().Str("email", created.Email).Msg("user registered")

	return &ports.SignupResult{User: created, VerificationToken: verificationToken}, nil
}

// VerifyEmail confirms the address carried in the token. The flag flips
// exactly once; a second call reports the address as already verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.EmailSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidVerificationToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != verificationPurpose {
		return domain.ErrInvalidVerificationToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return domain.ErrInvalidVerificationToken
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidVerificationToken
		}
		return err
	}
	if user.IsEmailVerified {
		return domain.ErrEmailAlreadyVerified
	}

	user.IsEmailVerified = true
	user.VerificationToken = ""
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("email verified")
	return nil
}

// Login authenticates a verified, non-deleted account and returns a session
// token carrying the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.IsDeleted {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetAccount returns the actor's record; soft-deleted accounts read as absent.
func (s *AuthService) GetAccount(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// DeleteAccount soft-deletes the actor. The flag is permanent, there is no
// restore path, and a notification email is dispatched.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsDeleted {
		return domain.ErrUserNotFound
	}

	user.IsDeleted = true
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.notify(ctx, user.Email, "Account Deletion",
		fmt.Sprintf("Dear %s, your account has been successfully deleted. If this was not intended, please contact support.", user.Email))

	s.logger.Info().Str("user_id", userID).Msg("account soft-deleted")
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsDeleted {
		return domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrCurrentPasswordIncorrect
	}
	if !passwordMeetsPolicy(newPassword) {
		return domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

func (s *AuthService) generateSessionToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateVerificationToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": verificationPurpose,
		"exp":     time.Now().Add(s.cfg.VerifyTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.EmailSecret))
}

// notify dispatches an email and swallows failures; notifications never fail
// the enclosing workflow.
func (s *AuthService) notify(ctx context.Context, to, subject, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, ports.EmailMessage{To: to, Subject: subject, Body: body}); err != nil {
		s.logger.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("notification failed")
	}
}

// passwordMeetsPolicy checks the signup rule: at least 8 characters with at
// least one uppercase and one lowercase letter.
func passwordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	return hasUpper && hasLower
}
