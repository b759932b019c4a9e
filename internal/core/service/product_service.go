package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/api/metrics"
	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

// ProductService implements the catalog use cases. Listings carry a
// denormalised copy of the owner's name and business so catalog reads never
// join the users collection.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, notifier: notifier, logger: logger}
}

// Create registers a new listing owned by the actor. Only accounts whose
// role allows selling may list.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	owner, err := s.activeUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !owner.Role.CanSell() {
		return nil, domain.ErrForbidden
	}

	category := domain.Category(input.Category)
	if !category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	product := &domain.Product{
		UserID:         owner.ID,
		OwnerFirstName: owner.FirstName,
		OwnerLastName:  owner.LastName,
		BusinessName:   owner.BusinessName,
		Name:           input.Name,
		Quantity:       input.Quantity,
		UnitPrice:      input.UnitPrice,
		Description:    input.Description,
		Category:       category,
		Image:          input.Image,
		DateOfUpload:   time.Now().UTC(),
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.notify(ctx, owner.Email, "Product Added Successfully",
		fmt.Sprintf("Product %s has been added successfully.", created.Name))
	s.logger.Info().Str("product_id", created.ID).Str("user_id", owner.ID).Msg("product created")

	return created, nil
}

// Update applies the non-empty fields of input to an existing listing. Only
// the owner may update.
func (s *ProductService) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.activeProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}

	owner, err := s.activeUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		category := domain.Category(input.Category)
		if !category.IsValid() {
			return nil, domain.ErrInvalidCategory
		}
		product.Category = category
	}
	if input.Image != "" {
		product.Image = input.Image
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.notify(ctx, owner.Email, "Product Updated",
		fmt.Sprintf("Product %s has been updated.", product.Name))

	return product, nil
}

// SoftDelete marks the listing deleted; it stays in storage but disappears
// from every read path.
func (s *ProductService) SoftDelete(ctx context.Context, userID, productID string) error {
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.UserID != userID {
		return domain.ErrForbidden
	}

	owner, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	product.IsDeleted = true
	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.notify(ctx, owner.Email, "Product Deleted",
		fmt.Sprintf("Product %s has been deleted.", product.Name))
	s.logger.Info().Str("product_id", productID).Msg("product soft-deleted")

	return nil
}

// Get returns a single non-deleted listing.
func (s *ProductService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.activeProduct(ctx, productID)
}

// List returns every non-deleted listing.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListActive(ctx)
}

// Search matches non-deleted listings against the supplied terms.
func (s *ProductService) Search(ctx context.Context, filter ports.ProductSearchFilter) ([]*domain.Product, error) {
	return s.products.Search(ctx, filter)
}

// DecrementOnOrder subtracts orderQuantity from stock, refusing to go
// negative. It is a standalone operation: PlaceOrder does not call it.
func (s *ProductService) DecrementOnOrder(ctx context.Context, productID string, orderQuantity int) (*domain.Product, error) {
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Quantity < orderQuantity {
		metrics.StockRejectionsTotal.Inc()
		return nil, domain.ErrInsufficientQuantity
	}

	product.Quantity -= orderQuantity
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("decrement quantity: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Int("order_quantity", orderQuantity).
		Int("remaining", product.Quantity).
		Msg("stock decremented")

	return product, nil
}

func (s *ProductService) activeProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) activeUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *ProductService) notify(ctx context.Context, to, subject, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, ports.EmailMessage{To: to, Subject: subject, Body: body}); err != nil {
		s.logger.Warn().Err(err).Str("to", to).Msg("notification failed")
	}
}
