package domain

import (
	"errors"
	"time"
)

// Role describes what a user is allowed to do in the marketplace.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleBoth   Role = "both"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailNotVerified = errors.New("email not verified")
var ErrEmailAlreadyVerified = errors.New("email already verified")
var ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrWeakPassword = errors.New("password must be 8 or more characters and include uppercase and lowercase")
var ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
var ErrBusinessNameRequired = errors.New("business name is required for sellers")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleBoth:
		return true
	}
	return false
}

// CanSell reports whether the role allows owning product listings.
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleBoth
}

// User models a marketplace account. PasswordHash never leaves the server;
// VerificationToken is cleared once the email is confirmed. Soft deletion is
// permanent; there is no restore path.
type User struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	Email             string    `json:"email" bson:"email"`
	PasswordHash      string    `json:"-" bson:"password"`
	FirstName         string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	ContactNumber     string    `json:"contact_number,omitempty" bson:"contact_number,omitempty"`
	Address           string    `json:"address,omitempty" bson:"address,omitempty"`
	Role              Role      `json:"role,omitempty" bson:"role,omitempty"`
	BusinessName      string    `json:"business_name,omitempty" bson:"business_name,omitempty"`
	IsDeleted         bool      `json:"-" bson:"is_deleted"`
	IsEmailVerified   bool      `json:"is_email_verified" bson:"is_email_verified"`
	VerificationToken string    `json:"-" bson:"verification_token,omitempty"`
	RegistrationDate  time.Time `json:"registration_date" bson:"registration_date"`
}
