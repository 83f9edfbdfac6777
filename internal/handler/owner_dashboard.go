package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/repository"
)

// OwnerDashboardHandler serves the owner's aggregate figures for their
// primary salon.
type OwnerDashboardHandler struct {
	Salons *repository.SalonRepo
	Stats  *repository.StatsRepo
}

func NewOwnerDashboardHandler(s *repository.SalonRepo, st *repository.StatsRepo) *OwnerDashboardHandler {
	return &OwnerDashboardHandler{Salons: s, Stats: st}
}

// Get returns appointment count and completed revenue for the owner's
// salon. Owners without a salon get 404; a salon with no appointments gets
// zeros, never null.
func (h *OwnerDashboardHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	salonID, err := h.Salons.FirstSalonIDByOwner(ctx, authUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "No salon found for this owner")
		}
		log.Error().Err(err).Msg("dashboard: salon lookup failed")
		return fail(c, http.StatusInternalServerError, "Could not load dashboard")
	}

	stats, err := h.Stats.Owner(ctx, salonID)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: stats failed")
		return fail(c, http.StatusInternalServerError, "Could not load dashboard")
	}
	return ok(c, http.StatusOK, stats)
}
