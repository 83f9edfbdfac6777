package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// AppointmentRepo encapsulates all queries against the appointments table,
// including the transactional duplicate-booking guard.
type AppointmentRepo struct{ DB *sql.DB }

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{DB: db} }

// appointmentColumns formats DATE/TIME columns as strings so the rows scan
// uniformly regardless of the driver's parseTime setting.
const appointmentColumns = `a.id, a.user_id, a.salon_id, a.service_id, a.staff_id,
	DATE_FORMAT(a.appointment_date, '%Y-%m-%d'), a.start_time, a.end_time,
	a.total_price, a.notes, a.status, a.created_at, a.updated_at`

func scanAppointment(row interface{ Scan(...any) error }, extra ...*sql.NullString) (model.Appointment, error) {
	var (
		ap                 model.Appointment
		serviceID, staffID sql.NullString
		notes              sql.NullString
	)
	dest := []any{&ap.ID, &ap.UserID, &ap.SalonID, &serviceID, &staffID,
		&ap.AppointmentDate, &ap.StartTime, &ap.EndTime,
		&ap.TotalPrice, &notes, &ap.Status, &ap.CreatedAt, &ap.UpdatedAt}
	for _, e := range extra {
		dest = append(dest, e)
	}
	if err := row.Scan(dest...); err != nil {
		return model.Appointment{}, err
	}
	if serviceID.Valid {
		ap.ServiceID = &serviceID.String
	}
	if staffID.Valid {
		ap.StaffID = &staffID.String
	}
	if notes.Valid {
		ap.Notes = &notes.String
	}
	return ap, nil
}

// GetByID fetches a bare appointment row.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (model.Appointment, error) {
	ap, err := scanAppointment(r.DB.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM appointments a WHERE a.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	return ap, err
}

// Create validates the referenced service and inserts the appointment with
// status pending. The duplicate check (same customer, service and date,
// non-cancelled) runs inside a transaction with SELECT ... FOR UPDATE so
// two concurrent bookings cannot both pass the guard.
func (r *AppointmentRepo) Create(ctx context.Context, ap *model.Appointment) (model.Appointment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	if ap.ServiceID != nil {
		var price float64
		err = tx.QueryRowContext(ctx,
			"SELECT price FROM services WHERE id = ? AND salon_id = ? AND is_active = 1",
			*ap.ServiceID, ap.SalonID).Scan(&price)
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrServiceUnavailable
			return model.Appointment{}, err
		}
		if err != nil {
			return model.Appointment{}, err
		}
		if ap.TotalPrice == 0 {
			ap.TotalPrice = price
		}

		var existing string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM appointments
			 WHERE user_id = ? AND service_id = ? AND appointment_date = ?
			   AND status <> 'cancelled'
			 LIMIT 1 FOR UPDATE`,
			ap.UserID, *ap.ServiceID, ap.AppointmentDate).Scan(&existing)
		if err == nil {
			err = ErrDuplicateBooking
			return model.Appointment{}, err
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return model.Appointment{}, err
		}
		err = nil
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO appointments
		 (id, user_id, salon_id, service_id, staff_id,
		  appointment_date, start_time, end_time, total_price, notes, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,'pending')`,
		id, ap.UserID, ap.SalonID, ap.ServiceID, ap.StaffID,
		ap.AppointmentDate, ap.StartTime, ap.EndTime, ap.TotalPrice, ap.Notes)
	if err != nil {
		return model.Appointment{}, err
	}

	created, err := scanAppointment(tx.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM appointments a WHERE a.id = ?", id))
	return created, err
}

// ListByUser returns the customer's appointments with display names,
// ordered date DESC then start time DESC.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+appointmentColumns+`,
		 s.name AS salon_name,
		 CONCAT(st.first_name, ' ', st.last_name) AS staff_name,
		 sv.name AS service_name
		 FROM appointments a
		 JOIN salons s ON a.salon_id = s.id
		 LEFT JOIN staff st ON a.staff_id = st.id
		 LEFT JOIN services sv ON a.service_id = sv.id
		 WHERE a.user_id = ?
		 ORDER BY a.appointment_date DESC, a.start_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var salonName, staffName, serviceName sql.NullString
		ap, err := scanAppointment(rows, &salonName, &staffName, &serviceName)
		if err != nil {
			return nil, err
		}
		ap.SalonName = salonName.String
		ap.StaffName = staffName.String
		ap.ServiceName = serviceName.String
		out = append(out, ap)
	}
	return out, rows.Err()
}

// ListByOwner returns every appointment under the owner's salons with
// customer, salon, staff and service display names.
func (r *AppointmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+appointmentColumns+`,
		 CONCAT(u.first_name, ' ', u.last_name) AS customer_name,
		 s.name AS salon_name,
		 CONCAT(st.first_name, ' ', st.last_name) AS staff_name,
		 sv.name AS service_name
		 FROM appointments a
		 JOIN salons s ON a.salon_id = s.id
		 LEFT JOIN users u ON a.user_id = u.id
		 LEFT JOIN staff st ON a.staff_id = st.id
		 LEFT JOIN services sv ON a.service_id = sv.id
		 WHERE s.owner_id = ?
		 ORDER BY a.appointment_date DESC, a.start_time DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ListAllAdmin returns every appointment in the system for the admin view.
func (r *AppointmentRepo) ListAllAdmin(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+appointmentColumns+`,
		 CONCAT(u.first_name, ' ', u.last_name) AS customer_name,
		 s.name AS salon_name,
		 CONCAT(st.first_name, ' ', st.last_name) AS staff_name,
		 sv.name AS service_name
		 FROM appointments a
		 LEFT JOIN users u ON a.user_id = u.id
		 LEFT JOIN salons s ON a.salon_id = s.id
		 LEFT JOIN staff st ON a.staff_id = st.id
		 LEFT JOIN services sv ON a.service_id = sv.id
		 ORDER BY a.appointment_date DESC, a.start_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJoined(rows)
}

func collectJoined(rows *sql.Rows) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		var customerName, salonName, staffName, serviceName sql.NullString
		ap, err := scanAppointment(rows, &customerName, &salonName, &staffName, &serviceName)
		if err != nil {
			return nil, err
		}
		ap.CustomerName = customerName.String
		ap.SalonName = salonName.String
		ap.StaffName = staffName.String
		ap.ServiceName = serviceName.String
		out = append(out, ap)
	}
	return out, rows.Err()
}

// getForOwner loads an appointment only if its salon belongs to ownerID,
// mapping failures to ErrNotFound / ErrForbidden.
func (r *AppointmentRepo) getForOwner(ctx context.Context, id, ownerID string) (model.Appointment, error) {
	ap, err := scanAppointment(r.DB.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments a
		 JOIN salons s ON a.salon_id = s.id
		 WHERE a.id = ? AND s.owner_id = ?`, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return model.Appointment{}, ErrNotFound
		}
		return model.Appointment{}, ErrForbidden
	}
	return ap, err
}

// AssignStaff sets the staff member and transitions pending -> confirmed.
// The appointment must belong to one of the owner's salons and the staff
// member must be active in the same salon.
func (r *AppointmentRepo) AssignStaff(ctx context.Context, id, ownerID, staffID string) (model.Appointment, error) {
	ap, err := r.getForOwner(ctx, id, ownerID)
	if err != nil {
		return model.Appointment{}, err
	}
	if model.IsTerminalStatus(ap.Status) {
		return model.Appointment{}, ErrInvalidState
	}

	var sid string
	err = r.DB.QueryRowContext(ctx,
		"SELECT id FROM staff WHERE id = ? AND salon_id = ? AND is_active = 1",
		staffID, ap.SalonID).Scan(&sid)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, err
	}

	_, err = r.DB.ExecContext(ctx,
		"UPDATE appointments SET staff_id = ?, status = 'confirmed' WHERE id = ?",
		staffID, id)
	if err != nil {
		return model.Appointment{}, err
	}
	return r.GetByID(ctx, id)
}

// Complete transitions pending|confirmed -> completed, gated on ownership.
func (r *AppointmentRepo) Complete(ctx context.Context, id, ownerID string) (model.Appointment, error) {
	ap, err := r.getForOwner(ctx, id, ownerID)
	if err != nil {
		return model.Appointment{}, err
	}
	if model.IsTerminalStatus(ap.Status) {
		return model.Appointment{}, ErrInvalidState
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE appointments SET status = 'completed' WHERE id = ?", id)
	if err != nil {
		return model.Appointment{}, err
	}
	return r.GetByID(ctx, id)
}

// CancelByUser flips the customer's own appointment to cancelled. The row
// is never deleted on this path.
func (r *AppointmentRepo) CancelByUser(ctx context.Context, id, userID string) error {
	var status string
	err := r.DB.QueryRowContext(ctx,
		"SELECT status FROM appointments WHERE id = ? AND user_id = ?",
		id, userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if model.IsTerminalStatus(status) {
		return ErrInvalidState
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE appointments SET status = 'cancelled' WHERE id = ?", id)
	return err
}

// DeleteByOwner hard deletes an appointment under the owner's salon,
// removing dependent payment rows first.
func (r *AppointmentRepo) DeleteByOwner(ctx context.Context, id, ownerID string) error {
	if _, err := r.getForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM payments WHERE appointment_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM appointments WHERE id = ?", id)
	return err
}

// ConfirmedInfo carries the joined display fields for the
// appointment.confirmed event payload.
type ConfirmedInfo struct {
	SalonName    string
	CustomerName string
	StaffName    string
	ServiceName  string
}

// GetConfirmedInfo loads the display names for an appointment's event.
func (r *AppointmentRepo) GetConfirmedInfo(ctx context.Context, id string) (ConfirmedInfo, error) {
	var (
		info                                 ConfirmedInfo
		customer, staffName, serviceName, sn sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT s.name,
		 CONCAT(u.first_name, ' ', u.last_name),
		 CONCAT(st.first_name, ' ', st.last_name),
		 sv.name
		 FROM appointments a
		 JOIN salons s ON a.salon_id = s.id
		 LEFT JOIN users u ON a.user_id = u.id
		 LEFT JOIN staff st ON a.staff_id = st.id
		 LEFT JOIN services sv ON a.service_id = sv.id
		 WHERE a.id = ?`, id).Scan(&sn, &customer, &staffName, &serviceName)
	if err != nil {
		return ConfirmedInfo{}, err
	}
	info.SalonName = sn.String
	info.CustomerName = customer.String
	info.StaffName = staffName.String
	info.ServiceName = serviceName.String
	return info, nil
}
