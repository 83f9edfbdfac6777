package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// ServiceRepo encapsulates all queries against the services table.
// Services are soft deleted; Deactivate is idempotent.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

const serviceColumns = "id, salon_id, name, category, description, price, duration_minutes, is_active, created_at, updated_at"

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var (
		sv   model.Service
		desc sql.NullString
	)
	err := row.Scan(&sv.ID, &sv.SalonID, &sv.Name, &sv.Category, &desc,
		&sv.Price, &sv.DurationMinutes, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt)
	if err != nil {
		return model.Service{}, err
	}
	if desc.Valid {
		sv.Description = &desc.String
	}
	return sv, nil
}

// ListBySalon returns a salon's services ordered by name. The owning owner
// sees inactive rows too; everyone else only active ones.
func (r *ServiceRepo) ListBySalon(ctx context.Context, salonID string, includeInactive bool) ([]model.Service, error) {
	q := "SELECT " + serviceColumns + " FROM services WHERE salon_id = ?"
	if !includeInactive {
		q += " AND is_active = 1"
	}
	q += " ORDER BY name ASC"

	rows, err := r.DB.QueryContext(ctx, q, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

// GetByID fetches a service regardless of active flag.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (model.Service, error) {
	sv, err := scanService(r.DB.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Service{}, ErrNotFound
	}
	return sv, err
}

// Create assigns a UUID and inserts the service.
func (r *ServiceRepo) Create(ctx context.Context, sv *model.Service) (model.Service, error) {
	id := uuid.NewString()
	category := sv.Category
	if category == "" {
		category = "Other"
	}
	duration := sv.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	active := 1
	if !sv.IsActive {
		active = 0
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO services
		 (id, salon_id, name, category, description, price, duration_minutes, is_active)
		 VALUES (?,?,?,?,?,?,?,?)`,
		id, sv.SalonID, sv.Name, category, sv.Description, sv.Price, duration, active)
	if err != nil {
		return model.Service{}, err
	}
	return r.GetByID(ctx, id)
}

// ServiceUpdate carries the optional fields of a partial service update.
type ServiceUpdate struct {
	Name            *string
	Category        *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
}

// Update applies a partial update. Ownership is checked by the handler
// before calling.
func (r *ServiceRepo) Update(ctx context.Context, id string, up ServiceUpdate) (model.Service, error) {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE services SET
		   name             = COALESCE(?, name),
		   category         = COALESCE(?, category),
		   description      = COALESCE(?, description),
		   price            = COALESCE(?, price),
		   duration_minutes = COALESCE(?, duration_minutes),
		   is_active        = COALESCE(?, is_active)
		 WHERE id = ?`,
		up.Name, up.Category, up.Description, up.Price, up.DurationMinutes, up.IsActive, id)
	if err != nil {
		return model.Service{}, err
	}
	return r.GetByID(ctx, id)
}

// Deactivate soft deletes a service. Deactivating an already-inactive
// service is a no-op and not an error.
func (r *ServiceRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE services SET is_active = 0 WHERE id = ?", id)
	return err
}
