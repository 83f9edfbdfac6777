package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// StaffRepo encapsulates all queries against the staff table. Ownership of
// the parent salon is enforced in the WHERE clause of every mutation via a
// join, mirroring the appointment queries.
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

const staffColumns = "id, salon_id, first_name, last_name, phone, is_active, created_at, updated_at"

func scanStaff(row interface{ Scan(...any) error }) (model.Staff, error) {
	var (
		st    model.Staff
		phone sql.NullString
	)
	err := row.Scan(&st.ID, &st.SalonID, &st.FirstName, &st.LastName, &phone,
		&st.IsActive, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return model.Staff{}, err
	}
	if phone.Valid {
		st.Phone = &phone.String
	}
	return st, nil
}

// ListBySalon returns a salon's active staff, newest first.
func (r *StaffRepo) ListBySalon(ctx context.Context, salonID string) ([]model.Staff, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE salon_id = ? AND is_active = 1 ORDER BY created_at DESC",
		salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetByID fetches a staff member regardless of active flag.
func (r *StaffRepo) GetByID(ctx context.Context, id string) (model.Staff, error) {
	st, err := scanStaff(r.DB.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Staff{}, ErrNotFound
	}
	return st, err
}

// Create assigns a UUID and inserts the staff member.
func (r *StaffRepo) Create(ctx context.Context, st *model.Staff) (model.Staff, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO staff (id, salon_id, first_name, last_name, phone, is_active) VALUES (?,?,?,?,?,1)",
		id, st.SalonID, st.FirstName, st.LastName, st.Phone)
	if err != nil {
		return model.Staff{}, err
	}
	return r.GetByID(ctx, id)
}

// Update rewrites the mutable fields if the staff member's salon belongs
// to ownerID. Returns ErrForbidden when no row matches both.
func (r *StaffRepo) Update(ctx context.Context, id, ownerID string, firstName, lastName *string, phone *string) (model.Staff, error) {
	var staffID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT st.id FROM staff st
		 JOIN salons s ON st.salon_id = s.id
		 WHERE st.id = ? AND s.owner_id = ?`,
		id, ownerID).Scan(&staffID)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return model.Staff{}, ErrNotFound
		}
		return model.Staff{}, ErrForbidden
	}
	if err != nil {
		return model.Staff{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE staff SET
		   first_name = COALESCE(?, first_name),
		   last_name  = COALESCE(?, last_name),
		   phone      = COALESCE(?, phone)
		 WHERE id = ?`,
		firstName, lastName, phone, id)
	if err != nil {
		return model.Staff{}, err
	}
	return r.GetByID(ctx, id)
}

// Deactivate soft deletes a staff member, gated on salon ownership.
// Deactivating an already-inactive member is a no-op and not an error.
func (r *StaffRepo) Deactivate(ctx context.Context, id, ownerID string) error {
	var staffID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT st.id FROM staff st
		 JOIN salons s ON st.salon_id = s.id
		 WHERE st.id = ? AND s.owner_id = ?`,
		id, ownerID).Scan(&staffID)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE staff SET is_active = 0 WHERE id = ?", id)
	return err
}
