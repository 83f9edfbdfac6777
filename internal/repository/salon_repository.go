package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// SalonRepo encapsulates all queries against the salons table.
type SalonRepo struct{ DB *sql.DB }

func NewSalonRepo(db *sql.DB) *SalonRepo { return &SalonRepo{DB: db} }

// salonColumns is the s.* portion shared by every select; owner_name is the
// join artifact appended by the public queries.
const salonColumns = `s.id, s.owner_id, s.name, s.description, s.address, s.city, s.state,
	s.zip_code, s.country, s.phone, s.email, s.opening_time, s.closing_time,
	s.rating, s.is_active, s.created_at, s.updated_at`

func scanSalon(row interface{ Scan(...any) error }, withOwnerName bool) (model.Salon, error) {
	var (
		sl                        model.Salon
		desc, state, zip, email   sql.NullString
		opening, closing, ownName sql.NullString
	)
	dest := []any{&sl.ID, &sl.OwnerID, &sl.Name, &desc, &sl.Address, &sl.City, &state,
		&zip, &sl.Country, &sl.Phone, &email, &opening, &closing,
		&sl.Rating, &sl.IsActive, &sl.CreatedAt, &sl.UpdatedAt}
	if withOwnerName {
		dest = append(dest, &ownName)
	}
	if err := row.Scan(dest...); err != nil {
		return model.Salon{}, err
	}
	if desc.Valid {
		sl.Description = &desc.String
	}
	if state.Valid {
		sl.State = &state.String
	}
	if zip.Valid {
		sl.ZipCode = &zip.String
	}
	if email.Valid {
		sl.Email = &email.String
	}
	if opening.Valid {
		sl.OpeningTime = &opening.String
	}
	if closing.Valid {
		sl.ClosingTime = &closing.String
	}
	sl.OwnerName = ownName.String
	return sl, nil
}

// ListPublic returns active salons for the public browse endpoint.
// city is a case-insensitive exact match, search a case-insensitive
// substring match on name or description. Results are ordered rating DESC,
// then created_at DESC, paginated by limit/offset.
func (r *SalonRepo) ListPublic(ctx context.Context, city, search string, limit, offset int) ([]model.Salon, error) {
	q := `SELECT ` + salonColumns + `,
	       CONCAT(u.first_name, ' ', u.last_name) AS owner_name
	       FROM salons s
	       LEFT JOIN users u ON s.owner_id = u.id
	       WHERE s.is_active = 1`
	var args []any
	if city != "" {
		q += " AND LOWER(s.city) = LOWER(?)"
		args = append(args, city)
	}
	if search != "" {
		q += " AND (LOWER(s.name) LIKE LOWER(?) OR LOWER(s.description) LIKE LOWER(?))"
		pat := "%" + search + "%"
		args = append(args, pat, pat)
	}
	q += " ORDER BY s.rating DESC, s.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Salon
	for rows.Next() {
		sl, err := scanSalon(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// ListByOwner returns the caller's active salons, newest first.
func (r *SalonRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Salon, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+salonColumns+` FROM salons s
		 WHERE s.owner_id = ? AND s.is_active = 1
		 ORDER BY s.created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Salon
	for rows.Next() {
		sl, err := scanSalon(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// GetByID fetches an active salon with its owner's display name.
// Returns ErrNotFound when no active row matches.
func (r *SalonRepo) GetByID(ctx context.Context, id string) (model.Salon, error) {
	sl, err := scanSalon(r.DB.QueryRowContext(ctx,
		`SELECT `+salonColumns+`,
		 CONCAT(u.first_name, ' ', u.last_name) AS owner_name
		 FROM salons s
		 LEFT JOIN users u ON s.owner_id = u.id
		 WHERE s.id = ? AND s.is_active = 1`, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Salon{}, ErrNotFound
	}
	return sl, err
}

// get fetches a salon by id regardless of active flag or owner. Used after
// mutations to return the fresh row.
func (r *SalonRepo) get(ctx context.Context, id string) (model.Salon, error) {
	sl, err := scanSalon(r.DB.QueryRowContext(ctx,
		`SELECT `+salonColumns+` FROM salons s WHERE s.id = ?`, id), false)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Salon{}, ErrNotFound
	}
	return sl, err
}

// OwnedBy reports whether the salon exists and belongs to ownerID.
func (r *SalonRepo) OwnedBy(ctx context.Context, salonID, ownerID string) (bool, error) {
	var id string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM salons WHERE id = ? AND owner_id = ?", salonID, ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// FirstSalonIDByOwner returns the owner's salon id for dashboard scoping.
// Returns ErrNotFound when the owner has not created a salon yet.
func (r *SalonRepo) FirstSalonIDByOwner(ctx context.Context, ownerID string) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM salons WHERE owner_id = ? LIMIT 1", ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// Create assigns a UUID and inserts the salon, then re-selects the row so
// callers receive server-assigned defaults and timestamps.
func (r *SalonRepo) Create(ctx context.Context, sl *model.Salon) (model.Salon, error) {
	id := uuid.NewString()
	country := sl.Country
	if country == "" {
		country = "USA"
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO salons
		 (id, owner_id, name, description, address, city, state, zip_code,
		  country, phone, email, opening_time, closing_time, is_active)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,1)`,
		id, sl.OwnerID, sl.Name, sl.Description, sl.Address, sl.City, sl.State,
		sl.ZipCode, country, sl.Phone, sl.Email, sl.OpeningTime, sl.ClosingTime)
	if err != nil {
		return model.Salon{}, err
	}
	return r.get(ctx, id)
}

// SalonUpdate carries the optional fields of a partial salon update.
// Nil fields retain their prior value via COALESCE.
type SalonUpdate struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Phone       *string
	Email       *string
	OpeningTime *string
	ClosingTime *string
}

// Update applies a partial update gated on ownership: admins pass
// ownerID == "" to skip the owner filter. Returns ErrForbidden when the
// row exists but is owned by someone else, ErrNotFound when it does not
// exist at all.
func (r *SalonRepo) Update(ctx context.Context, id, ownerID string, up SalonUpdate) (model.Salon, error) {
	if ownerID != "" {
		owned, err := r.OwnedBy(ctx, id, ownerID)
		if err != nil {
			return model.Salon{}, err
		}
		if !owned {
			if _, err := r.get(ctx, id); errors.Is(err, ErrNotFound) {
				return model.Salon{}, ErrNotFound
			}
			return model.Salon{}, ErrForbidden
		}
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE salons SET
		   name         = COALESCE(?, name),
		   description  = COALESCE(?, description),
		   address      = COALESCE(?, address),
		   city         = COALESCE(?, city),
		   state        = COALESCE(?, state),
		   zip_code     = COALESCE(?, zip_code),
		   phone        = COALESCE(?, phone),
		   email        = COALESCE(?, email),
		   opening_time = COALESCE(?, opening_time),
		   closing_time = COALESCE(?, closing_time)
		 WHERE id = ?`,
		up.Name, up.Description, up.Address, up.City, up.State, up.ZipCode,
		up.Phone, up.Email, up.OpeningTime, up.ClosingTime, id)
	if err != nil {
		return model.Salon{}, err
	}
	return r.get(ctx, id)
}

// DeleteCascade removes a salon together with its dependent rows inside a
// single transaction: reviews, payments for its appointments, the
// appointments themselves, services and staff. Admins pass ownerID == ""
// to bypass the ownership check.
func (r *SalonRepo) DeleteCascade(ctx context.Context, id, ownerID string) error {
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

	var dbOwnerID string
	if err = tx.QueryRowContext(ctx,
		"SELECT owner_id FROM salons WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}
	if ownerID != "" && dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM reviews WHERE salon_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE p FROM payments p
		 JOIN appointments a ON a.id = p.appointment_id
		 WHERE a.salon_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM appointments WHERE salon_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM services WHERE salon_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM staff WHERE salon_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM salons WHERE id = ?", id)
	return err
}

// RefreshRatings recomputes the cached rating scalar for every salon from
// its reviews. Invoked by the rating refresher cron, not by handlers.
func (r *SalonRepo) RefreshRatings(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE salons s
		 SET s.rating = COALESCE(
		   (SELECT ROUND(AVG(rv.rating), 2) FROM reviews rv WHERE rv.salon_id = s.id), 0)`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ListAllAdmin returns every salon with its owner's name, newest first.
func (r *SalonRepo) ListAllAdmin(ctx context.Context) ([]model.Salon, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+salonColumns+`,
		 CONCAT(u.first_name, ' ', u.last_name) AS owner_name
		 FROM salons s
		 LEFT JOIN users u ON s.owner_id = u.id
		 ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Salon
	for rows.Next() {
		sl, err := scanSalon(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}
