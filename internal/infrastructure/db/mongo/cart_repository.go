package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

const collectionCarts = "carts"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Items     []lineItemDoc      `bson:"items"`
	CreatedAt time.Time          `bson:"created_at"`
}

type lineItemDoc struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc cartDoc
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return fromCartDoc(&doc), nil
}

// Upsert replaces the cart keyed by its owner, creating it when absent. The
// unique index on user_id makes concurrent first-adds converge on a single
// document instead of racing a find-then-insert.
func (r *CartRepository) Upsert(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCartDoc(cart)
	res, err := r.col.ReplaceOne(ctx, bson.M{"user_id": cart.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("upsert cart: %w", err)
	}

	saved := *cart
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

// DeleteByUser removes the owner's cart wholesale. Deleting an absent cart
// is not an error.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func toCartDoc(c *domain.Cart) cartDoc {
	items := make([]lineItemDoc, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, lineItemDoc{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return cartDoc{UserID: c.UserID, Items: items, CreatedAt: c.CreatedAt}
}

func fromCartDoc(doc *cartDoc) *domain.Cart {
	items := make([]domain.LineItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &domain.Cart{ID: doc.ID.Hex(), UserID: doc.UserID, Items: items, CreatedAt: doc.CreatedAt}
}
