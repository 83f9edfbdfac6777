package middleware

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user's id from context, or "anon"
// for unauthenticated requests. Used when building per-user rate limit keys.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return "anon"
}
