package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/config"
	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/repository"
	"github.com/sizzer/salon-booking/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and token
// rotation endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func validateRegister(req *registerReq) map[string]string {
	problems := map[string]string{}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)

	if !utils.ValidEmail(req.Email) {
		problems["email"] = "A valid email is required"
	}
	if len(req.Password) < 6 {
		problems["password"] = "Password must be at least 6 characters"
	}
	if req.FirstName == "" {
		problems["first_name"] = "First name is required"
	}
	if req.LastName == "" {
		problems["last_name"] = "Last name is required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Register creates an account and returns a token pair immediately.
// Self-registration only grants the user or owner role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if problems := validateRegister(&req); problems != nil {
		return failFields(c, http.StatusBadRequest, "Validation failed", problems)
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleOwner {
		role = model.RoleUser
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "User already exists")
		}
		log.Error().Err(err).Msg("register: create user failed")
		return fail(c, http.StatusInternalServerError, "Registration failed")
	}

	return h.issueTokens(c, ctx, u, http.StatusCreated)
}

// Login verifies credentials and returns a fresh token pair. Inactive
// accounts get the same 401 as a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		}
		log.Error().Err(err).Msg("login: lookup failed")
		return fail(c, http.StatusInternalServerError, "Login failed")
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	return h.issueTokens(c, ctx, u, http.StatusOK)
}

// Refresh rotates a valid refresh token for a new pair. The presented
// token is revoked whether or not rotation succeeds.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "Refresh token is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetActiveByID(ctx, userID)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
	}

	return h.issueTokens(c, ctx, u, http.StatusOK)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "Refresh token is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		log.Error().Err(err).Msg("logout: revoke failed")
		return fail(c, http.StatusInternalServerError, "Logout failed")
	}
	return okMessage(c, http.StatusOK, "Logged out")
}

func (h *AuthHandler) issueTokens(c echo.Context, ctx context.Context, u model.User, status int) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.AccessTTLHours)
	if err != nil {
		log.Error().Err(err).Msg("auth: issue access token failed")
		return fail(c, http.StatusInternalServerError, "Could not issue token")
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		log.Error().Err(err).Msg("auth: issue refresh token failed")
		return fail(c, http.StatusInternalServerError, "Could not issue token")
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		log.Error().Err(err).Msg("auth: store refresh token failed")
		return fail(c, http.StatusInternalServerError, "Could not issue token")
	}

	return ok(c, status, echo.Map{
		"user":          u,
		"token":         access.Token,
		"expires_at":    access.Exp,
		"refresh_token": refresh.Raw, // raw value goes to the client once
	})
}
