package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Update(_ context.Context, _ *domain.User) error {
	return nil
}

func sellerContext(e *echo.Echo, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestRequireSeller_AllowsSellingRoles(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"seller-1": {ID: "seller-1", Role: domain.RoleSeller},
		"both-1":   {ID: "both-1", Role: domain.RoleBoth},
	}}

	for _, id := range []string{"seller-1", "both-1"} {
		c, rec := sellerContext(e, id)
		called := false
		handler := RequireSeller(repo)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("handler error for %s: %v", id, err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("expected %s to pass, got %d", id, rec.Code)
		}
	}
}

func TestRequireSeller_RejectsBuyer(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"buyer-1": {ID: "buyer-1", Role: domain.RoleBuyer},
	}}

	c, rec := sellerContext(e, "buyer-1")
	handler := RequireSeller(repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireSeller_UnknownOrDeletedUser(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"ghost-1": {ID: "ghost-1", Role: domain.RoleSeller, IsDeleted: true},
	}}

	for _, id := range []string{"missing", "ghost-1"} {
		c, rec := sellerContext(e, id)
		handler := RequireSeller(repo)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", id, rec.Code)
		}
	}
}

func TestRequireSeller_MissingIdentity(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	c, rec := sellerContext(e, "")
	handler := RequireSeller(repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
