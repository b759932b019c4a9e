package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	FirstName         string             `bson:"first_name,omitempty"`
	LastName          string             `bson:"last_name,omitempty"`
	ContactNumber     string             `bson:"contact_number,omitempty"`
	Address           string             `bson:"address,omitempty"`
	Role              string             `bson:"role,omitempty"`
	BusinessName      string             `bson:"business_name,omitempty"`
	IsDeleted         bool               `bson:"is_deleted"`
	IsEmailVerified   bool               `bson:"is_email_verified"`
	VerificationToken string             `bson:"verification_token,omitempty"`
	RegistrationDate  time.Time          `bson:"registration_date"`
}

// Create inserts a new user document. The unique email index turns a
// duplicate signup into domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromUserDoc(&doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return fromUserDoc(&doc), nil
}

// Update replaces the stored document for the user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toUserDoc(user)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		Email:             u.Email,
		Password:          u.PasswordHash,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		ContactNumber:     u.ContactNumber,
		Address:           u.Address,
		Role:              string(u.Role),
		BusinessName:      u.BusinessName,
		IsDeleted:         u.IsDeleted,
		IsEmailVerified:   u.IsEmailVerified,
		VerificationToken: u.VerificationToken,
		RegistrationDate:  u.RegistrationDate,
	}
}

func fromUserDoc(doc *userDoc) *domain.User {
	return &domain.User{
		ID:                doc.ID.Hex(),
		Email:             doc.Email,
		PasswordHash:      doc.Password,
		FirstName:         doc.FirstName,
		LastName:          doc.LastName,
		ContactNumber:     doc.ContactNumber,
		Address:           doc.Address,
		Role:              domain.Role(doc.Role),
		BusinessName:      doc.BusinessName,
		IsDeleted:         doc.IsDeleted,
		IsEmailVerified:   doc.IsEmailVerified,
		VerificationToken: doc.VerificationToken,
		RegistrationDate:  doc.RegistrationDate,
	}
}
