package repository

import (
	"context"
	"database/sql"
)

// AdminStats aggregates platform-wide counts for the admin dashboard.
type AdminStats struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalOwners       int     `json:"totalOwners"`
	TotalSalons       int     `json:"totalSalons"`
	TotalAppointments int     `json:"totalAppointments"`
	TotalBookingValue float64 `json:"totalBookingValue"`
}

// OwnerDashboard aggregates the owner's primary salon figures.
type OwnerDashboard struct {
	TotalAppointments int     `json:"totalAppointments"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// StatsRepo computes reporting aggregates straight in SQL.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Admin returns the platform totals. Booking value counts confirmed and
// completed appointments only.
func (r *StatsRepo) Admin(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	err := r.DB.QueryRowContext(ctx,
		`SELECT
		 (SELECT COUNT(*) FROM users WHERE role = 'user'),
		 (SELECT COUNT(*) FROM users WHERE role = 'owner'),
		 (SELECT COUNT(*) FROM salons WHERE is_active = 1),
		 (SELECT COUNT(*) FROM appointments),
		 (SELECT COALESCE(SUM(total_price), 0) FROM appointments
		  WHERE status IN ('confirmed', 'completed'))`).
		Scan(&s.TotalUsers, &s.TotalOwners, &s.TotalSalons,
			&s.TotalAppointments, &s.TotalBookingValue)
	return s, err
}

// Owner returns the dashboard figures for one salon. Revenue counts
// completed appointments only. Zero rows produce zero values, not an error.
func (r *StatsRepo) Owner(ctx context.Context, salonID string) (OwnerDashboard, error) {
	var d OwnerDashboard
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		 COALESCE(SUM(CASE WHEN status = 'completed' THEN total_price ELSE 0 END), 0)
		 FROM appointments WHERE salon_id = ?`, salonID).
		Scan(&d.TotalAppointments, &d.TotalRevenue)
	return d, err
}
