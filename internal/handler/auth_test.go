package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizzer/salon-booking/internal/config"
	"github.com/sizzer/salon-booking/internal/repository"
	"github.com/sizzer/salon-booking/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		JWTSecret:      "test-secret",
		BcryptCost:     4,
		AccessTTLHours: 1,
		RefreshTTLDays: 1,
	}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var userRows = []string{"id", "email", "password_hash", "first_name", "last_name",
	"phone", "avatar_url", "role", "is_active", "created_at", "updated_at"}

func errDuplicateEmail() error {
	return errors.New("Error 1062 (23000): Duplicate entry 'jo@example.com' for key 'uq_users_email'")
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/register", h.Register)

	tests := []struct {
		name string
		body string
		field string
	}{
		{"bad email", `{"email":"nope","password":"secret99","first_name":"Jo","last_name":"Doe"}`, "email"},
		{"short password", `{"email":"jo@example.com","password":"abc","first_name":"Jo","last_name":"Doe"}`, "password"},
		{"missing first name", `{"email":"jo@example.com","password":"secret99","last_name":"Doe"}`, "first_name"},
		{"missing last name", `{"email":"jo@example.com","password":"secret99","first_name":"Jo"}`, "last_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(e, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
			assert.Contains(t, rec.Body.String(), tt.field)
		})
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/register", h.Register)
	now := time.Now()

	// Role downgrades to "user" before the insert runs.
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", "hash", "Jo", "Doe", nil, nil, "user", true, now, now))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := postJSON(e, "/api/auth/register",
		`{"email":"jo@example.com","password":"secret99","first_name":"Jo","last_name":"Doe","role":"admin"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/register", h.Register)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errDuplicateEmail())

	rec := postJSON(e, "/api/auth/register",
		`{"email":"jo@example.com","password":"secret99","first_name":"Jo","last_name":"Doe"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccessReturnsTokens(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/login", h.Login)
	now := time.Now()

	hash, err := utils.HashPassword("secret99", 4)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("jo@example.com").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", hash, "Jo", "Doe", nil, nil, "user", true, now, now))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := postJSON(e, "/api/auth/login", `{"email":"jo@example.com","password":"secret99"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"refresh_token"`)
	assert.NotContains(t, rec.Body.String(), hash, "password hash must never serialize")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/login", h.Login)
	now := time.Now()

	hash, err := utils.HashPassword("secret99", 4)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", hash, "Jo", "Doe", nil, nil, "user", true, now, now))

	rec := postJSON(e, "/api/auth/login", `{"email":"jo@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	h, mock := newAuthHandler(t)
	e := echo.New()
	e.POST("/api/auth/login", h.Login)
	now := time.Now()

	hash, err := utils.HashPassword("secret99", 4)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", hash, "Jo", "Doe", nil, nil, "user", false, now, now))

	rec := postJSON(e, "/api/auth/login", `{"email":"jo@example.com","password":"secret99"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}
