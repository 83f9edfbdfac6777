package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sizzer/salon-booking/internal/metrics"
	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/queue"
	"github.com/sizzer/salon-booking/internal/repository"
	"github.com/sizzer/salon-booking/internal/service"
	"github.com/sizzer/salon-booking/internal/utils"
)

// AppointmentHandler implements the booking lifecycle: customers create
// and cancel, owners assign staff, complete and delete.
type AppointmentHandler struct {
	Appointments *repository.AppointmentRepo
}

func NewAppointmentHandler(a *repository.AppointmentRepo) *AppointmentHandler {
	return &AppointmentHandler{Appointments: a}
}

type appointmentCreateReq struct {
	SalonID         string  `json:"salon_id"`
	ServiceID       string  `json:"service_id"`
	StaffID         *string `json:"staff_id"`
	AppointmentDate string  `json:"appointment_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalPrice      float64 `json:"total_price"`
	Notes           *string `json:"notes"`
}

type assignStaffReq struct {
	StaffID string `json:"staff_id"`
}

// Create books an appointment for the calling customer with status pending.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req appointmentCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	problems := map[string]string{}
	req.SalonID = strings.TrimSpace(req.SalonID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	if req.SalonID == "" {
		problems["salon_id"] = "Salon is required"
	}
	if req.TotalPrice < 0 {
		problems["total_price"] = "Price cannot be negative"
	}
	if !utils.ValidDate(req.AppointmentDate) {
		problems["appointment_date"] = "Date must be YYYY-MM-DD"
	} else if utils.PastDate(req.AppointmentDate) {
		problems["appointment_date"] = "Cannot book an appointment in the past"
	}
	if !utils.ValidTimeOfDay(req.StartTime) {
		problems["start_time"] = "Start time must be HH:MM"
	}
	if !utils.ValidTimeOfDay(req.EndTime) {
		problems["end_time"] = "End time must be HH:MM"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusUnprocessableEntity, "Validation failed", problems)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Appointments may be booked without a service; the price guard and
	// duplicate check in the repository only apply when one is given.
	var serviceID *string
	if req.ServiceID != "" {
		serviceID = &req.ServiceID
	}
	ap, err := h.Appointments.Create(ctx, &model.Appointment{
		UserID:          authUserID(c),
		SalonID:         req.SalonID,
		ServiceID:       serviceID,
		StaffID:         req.StaffID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		TotalPrice:      req.TotalPrice,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrServiceUnavailable):
			return fail(c, http.StatusNotFound, "Service not available at this salon")
		case errors.Is(err, repository.ErrDuplicateBooking):
			return fail(c, http.StatusConflict, "You already have a booking for this service on that date")
		}
		log.Error().Err(err).Msg("appointments: create failed")
		return fail(c, http.StatusInternalServerError, "Could not book appointment")
	}

	metrics.ObserveBooking()
	return ok(c, http.StatusCreated, ap)
}

// ListMine returns the calling customer's appointments.
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	aps, err := h.Appointments.ListByUser(ctx, authUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("appointments: user list failed")
		return fail(c, http.StatusInternalServerError, "Could not load appointments")
	}
	return okList(c, http.StatusOK, aps)
}

// ListForOwner returns every appointment under the calling owner's salons.
func (h *AppointmentHandler) ListForOwner(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	aps, err := h.Appointments.ListByOwner(ctx, authUserID(c))
	if err != nil {
		log.Error().Err(err).Msg("appointments: owner list failed")
		return fail(c, http.StatusInternalServerError, "Could not load appointments")
	}
	return okList(c, http.StatusOK, aps)
}

// AssignStaff confirms an appointment by assigning an active staff member
// of the same salon, then publishes the confirmation event best-effort.
func (h *AppointmentHandler) AssignStaff(c echo.Context) error {
	var req assignStaffReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.StaffID) == "" {
		return fail(c, http.StatusBadRequest, "Staff id is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ap, err := h.Appointments.AssignStaff(ctx, c.Param("id"), authUserID(c), strings.TrimSpace(req.StaffID))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Appointment or staff member not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "This appointment does not belong to your salon")
		case errors.Is(err, repository.ErrInvalidState):
			return fail(c, http.StatusConflict, "Appointment can no longer be modified")
		}
		log.Error().Err(err).Msg("appointments: assign staff failed")
		return fail(c, http.StatusInternalServerError, "Could not assign staff")
	}

	h.publishConfirmed(c, ap)
	return ok(c, http.StatusOK, ap)
}

// Complete marks a pending or confirmed appointment as completed.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ap, err := h.Appointments.Complete(ctx, c.Param("id"), authUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Appointment not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "This appointment does not belong to your salon")
		case errors.Is(err, repository.ErrInvalidState):
			return fail(c, http.StatusConflict, "Appointment is already completed or cancelled")
		}
		log.Error().Err(err).Msg("appointments: complete failed")
		return fail(c, http.StatusInternalServerError, "Could not complete appointment")
	}
	return ok(c, http.StatusOK, ap)
}

// Cancel flips the caller's own appointment to cancelled.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Appointments.CancelByUser(ctx, c.Param("id"), authUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Appointment not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "You can only cancel your own appointments")
		case errors.Is(err, repository.ErrInvalidState):
			return fail(c, http.StatusConflict, "Appointment is already completed or cancelled")
		}
		log.Error().Err(err).Msg("appointments: cancel failed")
		return fail(c, http.StatusInternalServerError, "Could not cancel appointment")
	}
	return okMessage(c, http.StatusOK, "Appointment cancelled")
}

// Delete hard deletes an appointment under the owner's salon.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Appointments.DeleteByOwner(ctx, c.Param("id"), authUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Appointment not found")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "This appointment does not belong to your salon")
		}
		log.Error().Err(err).Msg("appointments: delete failed")
		return fail(c, http.StatusInternalServerError, "Could not delete appointment")
	}
	return okMessage(c, http.StatusOK, "Appointment deleted")
}

// publishConfirmed fires the appointment.confirmed event. Broker failures
// are logged inside the publisher and never surface to the client.
func (h *AppointmentHandler) publishConfirmed(c echo.Context, ap model.Appointment) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	info, err := h.Appointments.GetConfirmedInfo(ctx, ap.ID)
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", ap.ID).Msg("appointments: event info lookup failed")
		return
	}
	_ = service.PublishAppointmentConfirmed(ctx, queue.AppointmentConfirmedEvent{
		AppointmentID:   ap.ID,
		UserID:          ap.UserID,
		CustomerName:    info.CustomerName,
		SalonID:         ap.SalonID,
		SalonName:       info.SalonName,
		StaffName:       info.StaffName,
		ServiceName:     info.ServiceName,
		AppointmentDate: ap.AppointmentDate,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		TotalPrice:      ap.TotalPrice,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}
