package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/config"
	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/repository"
)

// ServiceHandler manages a salon's service catalog.
type ServiceHandler struct {
	Cfg      config.Config
	Salons   *repository.SalonRepo
	Services *repository.ServiceRepo
}

func NewServiceHandler(cfg config.Config, sa *repository.SalonRepo, sv *repository.ServiceRepo) *ServiceHandler {
	return &ServiceHandler{Cfg: cfg, Salons: sa, Services: sv}
}

type serviceCreateReq struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     *string `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type serviceUpdateReq struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	IsActive        *bool    `json:"is_active"`
}

func validateService(name string, price float64, duration int) map[string]string {
	problems := map[string]string{}
	if len(strings.TrimSpace(name)) < 2 {
		problems["name"] = "Service name must be at least 2 characters"
	}
	if price < 0 {
		problems["price"] = "Price cannot be negative"
	}
	if duration < 0 {
		problems["duration_minutes"] = "Duration must be positive"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ListBySalon is public and returns active services. The owning owner (or
// an admin) presenting a valid token also sees deactivated rows.
func (h *ServiceHandler) ListBySalon(c echo.Context) error {
	salonID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	includeInactive := false
	if uid, role := optionalIdentity(c, h.Cfg.JWTSecret); uid != "" {
		if role == model.RoleAdmin {
			includeInactive = true
		} else if role == model.RoleOwner {
			owned, err := h.Salons.OwnedBy(ctx, salonID, uid)
			if err == nil && owned {
				includeInactive = true
			}
		}
	}

	services, err := h.Services.ListBySalon(ctx, salonID, includeInactive)
	if err != nil {
		log.Error().Err(err).Msg("services: list failed")
		return fail(c, http.StatusInternalServerError, "Could not load services")
	}
	return okList(c, http.StatusOK, services)
}

// Create adds a service to one of the caller's salons.
func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if problems := validateService(req.Name, req.Price, req.DurationMinutes); problems != nil {
		return failFields(c, http.StatusUnprocessableEntity, "Validation failed", problems)
	}

	salonID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.requireSalonOwnership(c, salonID); err != nil {
		return err
	}

	sv, err := h.Services.Create(ctx, &model.Service{
		SalonID:         salonID,
		Name:            strings.TrimSpace(req.Name),
		Category:        strings.TrimSpace(req.Category),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	})
	if err != nil {
		log.Error().Err(err).Msg("services: create failed")
		return fail(c, http.StatusInternalServerError, "Could not create service")
	}
	return ok(c, http.StatusCreated, sv)
}

// Update partially updates a service owned by the caller.
func (h *ServiceHandler) Update(c echo.Context) error {
	var req serviceUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	problems := map[string]string{}
	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		problems["name"] = "Service name must be at least 2 characters"
	}
	if req.Price != nil && *req.Price < 0 {
		problems["price"] = "Price cannot be negative"
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		problems["duration_minutes"] = "Duration must be positive"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusUnprocessableEntity, "Validation failed", problems)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sv, err := h.Services.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Service not found")
		}
		log.Error().Err(err).Msg("services: fetch failed")
		return fail(c, http.StatusInternalServerError, "Could not update service")
	}
	if err := h.requireSalonOwnership(c, sv.SalonID); err != nil {
		return err
	}

	updated, err := h.Services.Update(ctx, sv.ID, repository.ServiceUpdate{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	})
	if err != nil {
		log.Error().Err(err).Msg("services: update failed")
		return fail(c, http.StatusInternalServerError, "Could not update service")
	}
	return ok(c, http.StatusOK, updated)
}

// Delete soft deletes a service. Repeating the call is not an error.
func (h *ServiceHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sv, err := h.Services.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Service not found")
		}
		log.Error().Err(err).Msg("services: fetch failed")
		return fail(c, http.StatusInternalServerError, "Could not delete service")
	}
	if err := h.requireSalonOwnership(c, sv.SalonID); err != nil {
		return err
	}

	if err := h.Services.Deactivate(ctx, sv.ID); err != nil {
		log.Error().Err(err).Msg("services: deactivate failed")
		return fail(c, http.StatusInternalServerError, "Could not delete service")
	}
	return okMessage(c, http.StatusOK, "Service deactivated")
}

// requireSalonOwnership writes the error response itself and returns it so
// callers can simply `return` on non-nil. Admins pass unconditionally.
func (h *ServiceHandler) requireSalonOwnership(c echo.Context, salonID string) error {
	if authRole(c) == model.RoleAdmin {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	owned, err := h.Salons.OwnedBy(ctx, salonID, authUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("services: ownership check failed")
		return fail(c, http.StatusInternalServerError, "Could not verify salon ownership")
	}
	if !owned {
		if _, err := h.Salons.GetByID(ctx, salonID); errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Salon not found")
		}
		return fail(c, http.StatusForbidden, "You do not own this salon")
	}
	return nil
}
