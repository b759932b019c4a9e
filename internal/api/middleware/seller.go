package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/palengke/marketplace-api/internal/core/ports"
)

// RequireSeller gates listing writes to accounts whose role allows selling.
// Session tokens carry only the user id, so the role is resolved from the
// user record rather than a claim.
func RequireSeller(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil || user.IsDeleted {
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			}
			if !user.Role.CanSell() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			return next(c)
		}
	}
}
