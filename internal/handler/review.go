package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/repository"
)

// ReviewHandler serves salon reviews. Only completed appointments can be
// reviewed, once each.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(r *repository.ReviewRepo) *ReviewHandler { return &ReviewHandler{Reviews: r} }

type reviewCreateReq struct {
	SalonID       string  `json:"salon_id"`
	AppointmentID string  `json:"appointment_id"`
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment"`
}

// ListBySalon is public and returns a salon's reviews newest first.
func (h *ReviewHandler) ListBySalon(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reviews, err := h.Reviews.ListBySalon(ctx, c.Param("id"))
	if err != nil {
		log.Error().Err(err).Msg("reviews: list failed")
		return fail(c, http.StatusInternalServerError, "Could not load reviews")
	}
	return okList(c, http.StatusOK, reviews)
}

// Create posts a review for the caller's own completed appointment.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	problems := map[string]string{}
	if strings.TrimSpace(req.SalonID) == "" {
		problems["salon_id"] = "Salon is required"
	}
	if strings.TrimSpace(req.AppointmentID) == "" {
		problems["appointment_id"] = "Appointment is required"
	}
	if req.Rating < 1 || req.Rating > 5 {
		problems["rating"] = "Rating must be between 1 and 5"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusBadRequest, "Validation failed", problems)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rv, err := h.Reviews.Create(ctx, authUserID(c), req.SalonID, req.AppointmentID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReviewNotAllowed):
			return fail(c, http.StatusBadRequest, "You can only review your own completed appointments")
		case errors.Is(err, repository.ErrDuplicateReview):
			return fail(c, http.StatusBadRequest, "This appointment has already been reviewed")
		}
		log.Error().Err(err).Msg("reviews: create failed")
		return fail(c, http.StatusInternalServerError, "Could not post review")
	}
	return ok(c, http.StatusCreated, rv)
}

// Delete removes the caller's own review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Reviews.DeleteByAuthor(ctx, c.Param("id"), authUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Review not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You can only delete your own reviews")
		}
		log.Error().Err(err).Msg("reviews: delete failed")
		return fail(c, http.StatusInternalServerError, "Could not delete review")
	}
	return okMessage(c, http.StatusOK, "Review deleted")
}
