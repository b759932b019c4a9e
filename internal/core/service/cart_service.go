package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/api/metrics"
	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

// CartService maintains the single mutable basket each user owns.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// AddItem puts quantity units of the product into the actor's cart, creating
// the cart lazily on first use. A line already holding the product is
// incremented rather than duplicated.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted {
		return nil, domain.ErrProductNotFound
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrCartNotFound) {
			return nil, err
		}
		cart = &domain.Cart{UserID: userID, CreatedAt: time.Now().UTC()}
	}

	cart.AddItem(productID, quantity)

	saved, err := s.carts.Upsert(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	s.logger.Debug().Str("user_id", userID).Str("product_id", productID).Int("quantity", quantity).Msg("cart item added")

	return saved, nil
}

// GetCart returns the actor's cart with every line resolved against the
// current catalog. Line totals use the product's price as of this read, so
// a cart's displayed total can drift between reads until checkout.
func (s *CartService) GetCart(ctx context.Context, userID string) (*ports.CartView, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ports.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]ports.CartItemView, 0, len(cart.Items)),
		CreatedAt: cart.CreatedAt,
	}

	for _, item := range cart.Items {
		line := ports.CartItemView{ProductID: item.ProductID, Quantity: item.Quantity}
		product, err := s.products.FindByID(ctx, item.ProductID)
		switch {
		case err == nil && !product.IsDeleted:
			line.Name = product.Name
			line.UnitPrice = product.UnitPrice
			line.Description = product.Description
			line.LineTotal = float64(item.Quantity) * product.UnitPrice
		case err != nil && !errors.Is(err, domain.ErrProductNotFound):
			// A catalog lookup failure is an infrastructure problem, not a
			// vanished product; rendering it as a zero-priced line would
			// silently understate the total.
			return nil, fmt.Errorf("resolve cart line %s: %w", item.ProductID, err)
		}
		view.Items = append(view.Items, line)
		view.Total += line.LineTotal
	}

	return view, nil
}

// RemoveItem drops the line for productID from the actor's cart. A missing
// line is a no-op; only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	saved, err := s.carts.Upsert(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return saved, nil
}
