package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/domain"
	"github.com/palengke/marketplace-api/internal/core/ports"
)

// UserHandler handles the /userinfo profile routes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Role          string `json:"role" validate:"required,oneof=buyer seller both"`
	BusinessName  string `json:"businessName"`
}

type updateProfileResponse struct {
	Msg        string `json:"msg"`
	RedirectTo string `json:"redirectTo"`
}

// GetProfile returns the actor's profile fields.
//
// @Summary      Get profile
// @Tags         userinfo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /userinfo [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile replaces the mutable profile fields.
//
// @Summary      Update profile
// @Tags         userinfo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /userinfo [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:        userID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Role:          domain.Role(req.Role),
		BusinessName:  req.BusinessName,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateProfileResponse{
		Msg:        "User info updated successfully",
		RedirectTo: "/account",
	})
}
