package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/repository"
)

// AdminHandler serves the platform-wide listing and stats endpoints.
type AdminHandler struct {
	Users        *repository.UserRepo
	Salons       *repository.SalonRepo
	Appointments *repository.AppointmentRepo
	Stats        *repository.StatsRepo
}

func NewAdminHandler(u *repository.UserRepo, s *repository.SalonRepo, a *repository.AppointmentRepo, st *repository.StatsRepo) *AdminHandler {
	return &AdminHandler{Users: u, Salons: s, Appointments: a, Stats: st}
}

// ListUsers returns every account, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: user list failed")
		return fail(c, http.StatusInternalServerError, "Could not load users")
	}
	return okList(c, http.StatusOK, users)
}

// ListSalons returns every salon, active or not.
func (h *AdminHandler) ListSalons(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	salons, err := h.Salons.ListAllAdmin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: salon list failed")
		return fail(c, http.StatusInternalServerError, "Could not load salons")
	}
	return okList(c, http.StatusOK, salons)
}

// ListAppointments returns every appointment with joined display names.
func (h *AdminHandler) ListAppointments(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	aps, err := h.Appointments.ListAllAdmin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: appointment list failed")
		return fail(c, http.StatusInternalServerError, "Could not load appointments")
	}
	return okList(c, http.StatusOK, aps)
}

// GetStats returns the platform aggregate counters.
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Stats.Admin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("admin: stats failed")
		return fail(c, http.StatusInternalServerError, "Could not compute stats")
	}
	return ok(c, http.StatusOK, stats)
}
