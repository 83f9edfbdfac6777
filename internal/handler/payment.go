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

// PaymentHandler records and administers payments. Payment rows reference
// appointments but their status never drives the booking lifecycle.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo) *PaymentHandler { return &PaymentHandler{Payments: p} }

type paymentCreateReq struct {
	AppointmentID  string  `json:"appointment_id"`
	Amount         float64 `json:"amount"`
	Method         string  `json:"payment_method"`
	TransactionRef *string `json:"transaction_id"`
}

type paymentStatusReq struct {
	Status string `json:"status"`
}

// Create records a payment with status pending.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	problems := map[string]string{}
	if strings.TrimSpace(req.AppointmentID) == "" {
		problems["appointment_id"] = "Appointment is required"
	}
	if req.Amount <= 0 {
		problems["amount"] = "Amount must be greater than zero"
	}
	if strings.TrimSpace(req.Method) == "" {
		problems["payment_method"] = "Payment method is required"
	}
	if len(problems) > 0 {
		return failFields(c, http.StatusBadRequest, "Validation failed", problems)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.Create(ctx, &model.Payment{
		UserID:        authUserID(c),
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		PaymentMethod: strings.TrimSpace(req.Method),
		TransactionID: req.TransactionRef,
	})
	if err != nil {
		log.Error().Err(err).Msg("payments: create failed")
		return fail(c, http.StatusInternalServerError, "Could not record payment")
	}
	return ok(c, http.StatusCreated, p)
}

// List returns all payments for admins and the caller's own otherwise.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var (
		payments []model.Payment
		err      error
	)
	if authRole(c) == model.RoleAdmin {
		payments, err = h.Payments.ListAll(ctx)
	} else {
		payments, err = h.Payments.ListByUser(ctx, authUserID(c))
	}
	if err != nil {
		log.Error().Err(err).Msg("payments: list failed")
		return fail(c, http.StatusInternalServerError, "Could not load payments")
	}
	return okList(c, http.StatusOK, payments)
}

// Get returns one payment. Non-admins only see their own.
func (h *PaymentHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Payment not found")
		}
		log.Error().Err(err).Msg("payments: get failed")
		return fail(c, http.StatusInternalServerError, "Could not load payment")
	}
	if authRole(c) != model.RoleAdmin && p.UserID != authUserID(c) {
		return fail(c, http.StatusForbidden, "You can only view your own payments")
	}
	return ok(c, http.StatusOK, p)
}

// UpdateStatus moves a payment between pending, completed, failed and
// refunded. Admin only.
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	var req paymentStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidPaymentStatus(req.Status) {
		return failFields(c, http.StatusBadRequest, "Validation failed",
			map[string]string{"status": "Status must be pending, completed, failed or refunded"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Payment not found")
		}
		log.Error().Err(err).Msg("payments: status update failed")
		return fail(c, http.StatusInternalServerError, "Could not update payment")
	}
	return ok(c, http.StatusOK, p)
}

// Delete removes a payment row. Admin only.
func (h *PaymentHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Payments.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Payment not found")
		}
		log.Error().Err(err).Msg("payments: delete failed")
		return fail(c, http.StatusInternalServerError, "Could not delete payment")
	}
	return okMessage(c, http.StatusOK, "Payment deleted")
}
