package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// PaymentRepo records payments. Rows reference appointments loosely: an
// appointment id is stored but payment status never feeds back into the
// appointment lifecycle.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = `p.id, p.appointment_id, p.user_id, p.amount,
	p.payment_method, p.payment_status, p.transaction_id, p.created_at`

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var (
		p   model.Payment
		ref sql.NullString
	)
	err := row.Scan(&p.ID, &p.AppointmentID, &p.UserID, &p.Amount,
		&p.PaymentMethod, &p.PaymentStatus, &ref, &p.CreatedAt)
	if err != nil {
		return model.Payment{}, err
	}
	if ref.Valid {
		p.TransactionID = &ref.String
	}
	return p, nil
}

// Create inserts a payment row with status pending unless the caller
// supplies another valid status.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) (model.Payment, error) {
	if p.PaymentStatus == "" {
		p.PaymentStatus = model.PaymentPending
	}
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (id, appointment_id, user_id, amount, payment_method, payment_status, transaction_id)
		 VALUES (?,?,?,?,?,?,?)`,
		id, p.AppointmentID, p.UserID, p.Amount, p.PaymentMethod, p.PaymentStatus, p.TransactionID)
	if err != nil {
		return model.Payment{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (model.Payment, error) {
	p, err := scanPayment(r.DB.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments p WHERE p.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrNotFound
	}
	return p, err
}

// ListByUser returns the customer's own payments newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	return r.list(ctx,
		"SELECT "+paymentColumns+" FROM payments p WHERE p.user_id = ? ORDER BY p.created_at DESC",
		userID)
}

// ListAll returns every payment for the admin view.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	return r.list(ctx,
		"SELECT "+paymentColumns+" FROM payments p ORDER BY p.created_at DESC")
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus moves a payment to any valid status (admin operation).
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id, status string) (model.Payment, error) {
	if !model.ValidPaymentStatus(status) {
		return model.Payment{}, ErrInvalidState
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Payment{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET payment_status = ? WHERE id = ?", status, id)
	if err != nil {
		return model.Payment{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a payment row (admin operation).
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
