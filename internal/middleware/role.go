package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects the request with 403 unless the JWT's role claim is
// one of the given roles. Assumes JWTAuth already ran and stored the role
// under "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Insufficient permissions",
				})
			}
			return next(c)
		}
	}
}
