package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	BusinessName string             `bson:"business_name"`
	Name         string             `bson:"name"`
	Quantity     int                `bson:"quantity"`
	UnitPrice    float64            `bson:"unit_price"`
	Description  string             `bson:"description,omitempty"`
	Category     string             `bson:"category"`
	Image        string             `bson:"image,omitempty"`
	IsDeleted    bool               `bson:"is_deleted"`
	DateOfUpload time.Time          `bson:"date_of_upload"`
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toProductDoc(product))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *product
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return fromProductDoc(&doc), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	doc := toProductDoc(product)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ListActive returns every non-deleted product.
func (r *ProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

// Search matches non-deleted products against case-insensitive partial
// terms, OR-ed across the supplied fields. With no terms it behaves like
// ListActive.
func (r *ProductRepository) Search(ctx context.Context, filter ports.ProductSearchFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{"is_deleted": false}
	var terms bson.A
	if filter.Category != "" {
		terms = append(terms, bson.M{"category": caseInsensitive(filter.Category)})
	}
	if filter.Name != "" {
		terms = append(terms, bson.M{"name": caseInsensitive(filter.Name)})
	}
	if filter.BusinessName != "" {
		terms = append(terms, bson.M{"business_name": caseInsensitive(filter.BusinessName)})
	}
	if len(terms) > 0 {
		match["$or"] = terms
	}

	cur, err := r.col.Find(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func caseInsensitive(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]*domain.Product, error) {
	defer cur.Close(ctx)

	var products []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, fromProductDoc(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func toProductDoc(p *domain.Product) productDoc {
	return productDoc{
		UserID:       p.UserID,
		FirstName:    p.OwnerFirstName,
		LastName:     p.OwnerLastName,
		BusinessName: p.BusinessName,
		Name:         p.Name,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Description:  p.Description,
		Category:     string(p.Category),
		Image:        p.Image,
		IsDeleted:    p.IsDeleted,
		DateOfUpload: p.DateOfUpload,
	}
}

func fromProductDoc(doc *productDoc) *domain.Product {
	return &domain.Product{
		ID:             doc.ID.Hex(),
		UserID:         doc.UserID,
		OwnerFirstName: doc.FirstName,
		OwnerLastName:  doc.LastName,
		BusinessName:   doc.BusinessName,
		Name:           doc.Name,
		Quantity:       doc.Quantity,
		UnitPrice:      doc.UnitPrice,
		Description:    doc.Description,
		Category:       domain.Category(doc.Category),
		Image:          doc.Image,
		IsDeleted:      doc.IsDeleted,
		DateOfUpload:   doc.DateOfUpload,
	}
}
