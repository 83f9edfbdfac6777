package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/repository"
)

// StaffHandler manages a salon's staff roster.
type StaffHandler struct {
	Salons *repository.SalonRepo
	Staff  *repository.StaffRepo
}

func NewStaffHandler(sa *repository.SalonRepo, st *repository.StaffRepo) *StaffHandler {
	return &StaffHandler{Salons: sa, Staff: st}
}

type staffCreateReq struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

type staffUpdateReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// ListBySalon returns the salon's active staff. Public: customers pick a
// staff member when booking.
func (h *StaffHandler) ListBySalon(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	staff, err := h.Staff.ListBySalon(ctx, c.Param("id"))
	if err != nil {
		log.Error().Err(err).Msg("staff: list failed")
		return fail(c, http.StatusInternalServerError, "Could not load staff")
	}
	return okList(c, http.StatusOK, staff)
}

// Create adds a staff member to one of the caller's salons.
func (h *StaffHandler) Create(c echo.Context) error {
	var req staffCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	problems := map[string]string{}
	if req.FirstName == "" {
		problems["first_name"] = "First name is required"
	}
	if req.LastName == "" {
		problems["last_name"] = "Last name is required"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusBadRequest, "Validation failed", problems)
	}

	salonID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if authRole(c) != model.RoleAdmin {
		owned, err := h.Salons.OwnedBy(ctx, salonID, authUserID(c))
		if err != nil {
			log.Error().Err(err).Msg("staff: ownership check failed")
			return fail(c, http.StatusInternalServerError, "Could not verify salon ownership")
		}
		if !owned {
			if _, err := h.Salons.GetByID(ctx, salonID); errors.Is(err, repository.ErrNotFound) {
				return fail(c, http.StatusNotFound, "Salon not found")
			}
			return fail(c, http.StatusForbidden, "You do not own this salon")
		}
	}

	st, err := h.Staff.Create(ctx, &model.Staff{
		SalonID:   salonID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		log.Error().Err(err).Msg("staff: create failed")
		return fail(c, http.StatusInternalServerError, "Could not create staff member")
	}
	return ok(c, http.StatusCreated, st)
}

// Update partially updates a staff member in one of the caller's salons.
func (h *StaffHandler) Update(c echo.Context) error {
	var req staffUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.Staff.Update(ctx, c.Param("id"), authUserID(c), req.FirstName, req.LastName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Staff member not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You do not own this salon")
		}
		log.Error().Err(err).Msg("staff: update failed")
		return fail(c, http.StatusInternalServerError, "Could not update staff member")
	}
	return ok(c, http.StatusOK, st)
}

// Delete soft deletes a staff member. Past appointments keep the reference.
func (h *StaffHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Staff.Deactivate(ctx, c.Param("id"), authUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Staff member not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You do not own this salon")
		}
		log.Error().Err(err).Msg("staff: deactivate failed")
		return fail(c, http.StatusInternalServerError, "Could not remove staff member")
	}
	return okMessage(c, http.StatusOK, "Staff member deactivated")
}
