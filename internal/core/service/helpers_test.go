package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- user repository stub ---

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

// --- product repository stub ---

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	copy := cloneProduct(product)
	r.nextID++
	copy.ID = "product-" + strconv.Itoa(r.nextID)
	r.products[copy.ID] = cloneProduct(copy)
	return cloneProduct(copy), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) ListActive(_ context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if !p.IsDeleted {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) Search(_ context.Context, _ ports.ProductSearchFilter) ([]*domain.Product, error) {
	return r.ListActive(context.Background())
}

// --- cart repository stub ---

type stubCartRepo struct {
	carts map[string]*domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = append([]domain.LineItem(nil), c.Items...)
	return &clone
}

func (r *stubCartRepo) FindByUser(_ context.Context, userID string) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (r *stubCartRepo) Upsert(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	copy := cloneCart(cart)
	if copy.ID == "" {
		copy.ID = "cart-" + cart.UserID
	}
	r.carts[copy.UserID] = cloneCart(copy)
	return cloneCart(copy), nil
}

func (r *stubCartRepo) DeleteByUser(_ context.Context, userID string) error {
	delete(r.carts, userID)
	return nil
}

// --- order repository stub ---

type stubOrderRepo struct {
	orders []*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{}
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]domain.LineItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	copy := cloneOrder(order)
	r.nextID++
	copy.ID = "order-" + strconv.Itoa(r.nextID)
	r.orders = append(r.orders, cloneOrder(copy))
	return cloneOrder(copy), nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

// --- notifier stub ---

type recordingNotifier struct {
	sent []ports.EmailMessage
	fail bool
}

func (n *recordingNotifier) Send(_ context.Context, msg ports.EmailMessage) error {
	if n.fail {
		return fmt.Errorf("smtp unavailable")
	}
	n.sent = append(n.sent, msg)
	return nil
}

// --- idempotency store stub ---

type memIdemStore struct {
	entries map[string]string
	fail    bool
}

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{entries: make(map[string]string)}
}

func (s *memIdemStore) Lookup(_ context.Context, userID, key string) (string, bool, error) {
	if s.fail {
		return "", false, fmt.Errorf("redis down")
	}
	orderID, ok := s.entries[userID+":"+key]
	return orderID, ok, nil
}

func (s *memIdemStore) Record(_ context.Context, userID, key, orderID string) error {
	if s.fail {
		return fmt.Errorf("redis down")
	}
	s.entries[userID+":"+key] = orderID
	return nil
}
