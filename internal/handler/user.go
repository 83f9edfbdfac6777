package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/repository"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler { return &UserHandler{Users: u} }

type profileUpdateReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, authUserID(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		log.Error().Err(err).Msg("profile: fetch failed")
		return fail(c, http.StatusInternalServerError, "Could not load profile")
	}
	return ok(c, http.StatusOK, u)
}

// UpdateProfile partially updates the caller's profile. Omitted fields are
// left untouched; email and role cannot be changed here.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return failFields(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"first_name": "First name cannot be empty"})
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return failFields(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"last_name": "Last name cannot be empty"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := authUserID(c)
	if err := h.Users.UpdateProfile(ctx, uid, req.FirstName, req.LastName, req.Phone, req.AvatarURL); err != nil {
		log.Error().Err(err).Msg("profile: update failed")
		return fail(c, http.StatusInternalServerError, "Could not update profile")
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		log.Error().Err(err).Msg("profile: reload failed")
		return fail(c, http.StatusInternalServerError, "Could not load profile")
	}
	return ok(c, http.StatusOK, u)
}
