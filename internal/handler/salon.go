package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/repository"
	"github.com/sizzer/salon-booking/internal/utils"
)

// SalonHandler serves the public salon catalog plus the owner/admin
// mutations on it.
type SalonHandler struct {
	Salons *repository.SalonRepo
}

func NewSalonHandler(s *repository.SalonRepo) *SalonHandler { return &SalonHandler{Salons: s} }

type salonCreateReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	Country     string  `json:"country"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

type salonUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

// ListPublic returns active salons with optional ?city=, ?search=, ?limit=
// and ?offset= query params, ordered rating DESC then newest first.
func (h *SalonHandler) ListPublic(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	search := strings.TrimSpace(c.QueryParam("search"))

	limit := 50
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	salons, err := h.Salons.ListPublic(ctx, city, search, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("salons: public list failed")
		return fail(c, http.StatusInternalServerError, "Could not load salons")
	}
	return okList(c, http.StatusOK, salons)
}

// ListMine returns the calling owner's salons.
func (h *SalonHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	salons, err := h.Salons.ListByOwner(ctx, authUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("salons: owner list failed")
		return fail(c, http.StatusInternalServerError, "Could not load salons")
	}
	return okList(c, http.StatusOK, salons)
}

// Get returns one active salon with its owner's display name.
func (h *SalonHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sl, err := h.Salons.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Salon not found")
		}
		log.Error().Err(err).Msg("salons: get failed")
		return fail(c, http.StatusInternalServerError, "Could not load salon")
	}
	return ok(c, http.StatusOK, sl)
}

// Create registers a new salon for the calling owner.
func (h *SalonHandler) Create(c echo.Context) error {
	var req salonCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	problems := map[string]string{}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" {
		problems["name"] = "Salon name is required"
	}
	if req.Address == "" {
		problems["address"] = "Address is required"
	}
	if req.City == "" {
		problems["city"] = "City is required"
	}
	if req.Phone == "" {
		problems["phone"] = "Phone is required"
	}
	if req.OpeningTime != nil && !utils.ValidTimeOfDay(*req.OpeningTime) {
		problems["opening_time"] = "Opening time must be HH:MM"
	}
	if req.ClosingTime != nil && !utils.ValidTimeOfDay(*req.ClosingTime) {
		problems["closing_time"] = "Closing time must be HH:MM"
	}
	if req.OpeningTime != nil && req.ClosingTime != nil &&
		len(problems) == 0 && *req.OpeningTime >= *req.ClosingTime {
		problems["closing_time"] = "Closing time must be after opening time"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusBadRequest, "Validation failed", problems)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	sl, err := h.Salons.Create(ctx, &model.Salon{
		OwnerID:     authUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     strings.TrimSpace(req.Country),
		Phone:       req.Phone,
		Email:       req.Email,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	})
	if err != nil {
		log.Error().Err(err).Msg("salons: create failed")
		return fail(c, http.StatusInternalServerError, "Could not create salon")
	}
	return ok(c, http.StatusCreated, sl)
}

// Update partially updates a salon. Owners may only touch their own
// salons; admins may touch any.
func (h *SalonHandler) Update(c echo.Context) error {
	var req salonUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.OpeningTime != nil && !utils.ValidTimeOfDay(*req.OpeningTime) {
		return failFields(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"opening_time": "Opening time must be HH:MM"})
	}
	if req.ClosingTime != nil && !utils.ValidTimeOfDay(*req.ClosingTime) {
		return failFields(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"closing_time": "Closing time must be HH:MM"})
	}

	ownerID := authUserID(c)
	if authRole(c) == model.RoleAdmin {
		ownerID = "" // admin bypasses the ownership filter
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Opening must stay before closing after the partial update. When only
	// one side changes, the stored counterpart is the one it must respect.
	if req.OpeningTime != nil || req.ClosingTime != nil {
		opening, closing := req.OpeningTime, req.ClosingTime
		if opening == nil || closing == nil {
			if cur, err := h.Salons.GetByID(ctx, c.Param("id")); err == nil {
				if opening == nil {
					opening = cur.OpeningTime
				}
				if closing == nil {
					closing = cur.ClosingTime
				}
			}
		}
		if opening != nil && closing != nil && clockHHMM(*opening) >= clockHHMM(*closing) {
			return failFields(c, http.StatusBadRequest, "Validation failed",
				map[string]string{"closing_time": "Closing time must be after opening time"})
		}
	}

	sl, err := h.Salons.Update(ctx, c.Param("id"), ownerID, repository.SalonUpdate{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Salon not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You do not own this salon")
		}
		log.Error().Err(err).Msg("salons: update failed")
		return fail(c, http.StatusInternalServerError, "Could not update salon")
	}
	return ok(c, http.StatusOK, sl)
}

// Delete removes a salon and everything under it in one transaction.
func (h *SalonHandler) Delete(c echo.Context) error {
	ownerID := authUserID(c)
	if authRole(c) == model.RoleAdmin {
		ownerID = ""
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Salons.DeleteCascade(ctx, c.Param("id"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Salon not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You do not own this salon")
		}
		log.Error().Err(err).Msg("salons: delete failed")
		return fail(c, http.StatusInternalServerError, "Could not delete salon")
	}
	return okMessage(c, http.StatusOK, "Salon deleted")
}

// clockHHMM trims a clock string to HH:MM so request values compare cleanly
// against the HH:MM:SS strings TIME columns scan into.
func clockHHMM(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
