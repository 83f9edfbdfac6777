package handler

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context for repository calls from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// authUserID returns the user id stored by the JWT middleware.
func authUserID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok {
		return s
	}
	return ""
}

func authRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// optionalIdentity extracts user id and role from a Bearer token on routes
// that are served without the JWT middleware. Returns empty strings when no
// valid token is present; it never rejects the request.
func optionalIdentity(c echo.Context, secret string) (userID, role string) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", ""
	}
	tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ""
	}
	userID, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	return userID, role
}
