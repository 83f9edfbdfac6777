package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizzer/salon-booking/internal/utils"
)

const testSecret = "test-secret"

func echoWith(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	h := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}
	e.GET("/protected", h, mw...)
	return e
}

func TestJWTAuthMissingToken(t *testing.T) {
	e := echoWith(JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	e := echoWith(JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	e := echoWith(JWTAuth(testSecret))

	at, err := utils.NewAccessToken("other-secret", "u-1", "a@b.co", "user", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	e := echoWith(JWTAuth(testSecret))

	at, err := utils.NewAccessToken(testSecret, "u-1", "a@b.co", "owner", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u-1"`)
	assert.Contains(t, rec.Body.String(), `"role":"owner"`)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"matching role passes", "owner", []string{"owner", "admin"}, http.StatusOK},
		{"admin passes owner gate", "admin", []string{"owner", "admin"}, http.StatusOK},
		{"customer blocked from admin", "user", []string{"admin"}, http.StatusForbidden},
		{"missing role blocked", "", []string{"user"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/x", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					if tt.role != "" {
						c.Set("role", tt.role)
					}
					return next(c)
				}
			}, RequireRole(tt.allowed...))

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
