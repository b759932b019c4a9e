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

// IdempotencyStore maps a caller-supplied placement key to the order it
// produced, so a retried PlaceOrder returns the original order instead of
// creating a duplicate (Redis-backed in production).
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, key string) (orderID string, found bool, err error)
	Record(ctx context.Context, userID, key, orderID string) error
}

// OrderService converts carts into immutable orders. Order creation and cart
// deletion are two independent single-document writes with no enclosing
// transaction; the idempotency key is the mitigation for a retry landing
// between them.
type OrderService struct {
	orders   ports.OrderRepository
	carts    ports.CartRepository
	products ports.ProductRepository
	idem     IdempotencyStore
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, carts ports.CartRepository, products ports.ProductRepository, idem IdempotencyStore, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products, idem: idem, logger: logger}
}

// PlaceOrder snapshots the actor's cart into an order carrying the
// caller-supplied total, then deletes the cart. The total is trusted as-is
// and not recomputed from catalog prices. Stock is NOT decremented here;
// that is the catalog's standalone decrement operation.
func (s *OrderService) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	if input.IdempotencyKey != "" && s.idem != nil {
		orderID, found, err := s.idem.Lookup(ctx, input.UserID, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("idempotency lookup failed, placing anyway")
		} else if found {
			existing, err := s.orders.FindByID(ctx, orderID)
			if err == nil {
				metrics.OrderReplaysTotal.Inc()
				s.logger.Info().Str("order_id", orderID).Str("idempotency_key", input.IdempotencyKey).Msg("idempotent replay")
				return &ports.PlaceOrderResult{Order: existing, AlreadyExisted: true}, nil
			}
			s.logger.Warn().Err(err).Str("order_id", orderID).Msg("replay order lookup failed, placing anyway")
		}
	}

	cart, err := s.carts.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrCartNotFound
	}

	order := &domain.Order{
		UserID:         input.UserID,
		Items:          append([]domain.LineItem(nil), cart.Items...),
		TotalAmount:    input.TotalAmount,
		PaymentStatus:  domain.PaymentPending,
		OrderStatus:    domain.OrderProcessing,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Record(ctx, input.UserID, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("failed to record idempotency key")
		}
	}

	if err := s.carts.DeleteByUser(ctx, input.UserID); err != nil {
		// The order exists but the cart survived; a retry without an
		// idempotency key would duplicate it.
		return nil, fmt.Errorf("clear cart after order %s: %w", created.ID, err)
	}

	metrics.OrdersPlacedTotal.Inc()
	s.logger.Info().
		Str("order_id", created.ID).
		Str("user_id", input.UserID).
		Int("items", len(created.Items)).
		Float64("total_amount", created.TotalAmount).
		Msg("order placed")

	return &ports.PlaceOrderResult{Order: created}, nil
}

// ListOrders returns the actor's orders with lines resolved against the
// current catalog. Zero orders reads as not-found rather than an empty list.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]ports.OrderView, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}

	views := make([]ports.OrderView, 0, len(orders))
	for _, order := range orders {
		view := ports.OrderView{
			ID:            order.ID,
			UserID:        order.UserID,
			Items:         make([]ports.OrderLineView, 0, len(order.Items)),
			TotalAmount:   order.TotalAmount,
			PaymentStatus: string(order.PaymentStatus),
			OrderStatus:   string(order.OrderStatus),
			CreatedAt:     order.CreatedAt,
		}
		for _, item := range order.Items {
			line := ports.OrderLineView{ProductID: item.ProductID, Quantity: item.Quantity}
			if product, err := s.products.FindByID(ctx, item.ProductID); err == nil && !product.IsDeleted {
				line.Name = product.Name
				line.UnitPrice = product.UnitPrice
			}
			view.Items = append(view.Items, line)
		}
		views = append(views, view)
	}

	return views, nil
}
