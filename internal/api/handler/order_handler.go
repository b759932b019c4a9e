package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/ports"
)

// OrderHandler converts carts into orders and lists order history.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type placeOrderRequest struct {
	TotalAmount float64 `json:"totalAmount" validate:"required,gt=0"`
}

type placeOrderResponse struct {
	Message string `json:"message"`
	Order   any    `json:"order"`
}

// PlaceOrder snapshots the actor's cart into an order. An optional
// Idempotency-Key header makes retries return the original order instead of
// creating a second one.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Retry-safe placement key"
// @Param        body             body      placeOrderRequest  true   "Order total"
// @Success      201   {object}  placeOrderResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /order/order [post]
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.orderService.PlaceOrder(c.Request().Context(), ports.PlaceOrderInput{
		UserID:         userID,
		TotalAmount:    req.TotalAmount,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	// Replays respond exactly like the first placement so retrying clients
	// need no special handling.
	return c.JSON(http.StatusCreated, placeOrderResponse{
		Message: "Order placed successfully",
		Order:   result.Order,
	})
}

// ListOrders returns the actor's order history, newest first.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /order/orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}
