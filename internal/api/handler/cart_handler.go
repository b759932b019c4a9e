package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/ports"
)

// CartHandler handles the per-user basket routes.
type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddItem adds quantity of a product to the actor's cart, creating the cart
// on first use.
//
// @Summary      Add item to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Item"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.cartService.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// GetCart returns the actor's cart resolved against the current catalog.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	view, err := h.cartService.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// RemoveItem drops a product line from the actor's cart. Removing a product
// that is not in the cart succeeds without change.
//
// @Summary      Remove item from cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path  string  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /cart/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.RemoveItem(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
