package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerDashboardZeroActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepo(db)

	// COUNT/COALESCE always yield a row, so an empty salon reports zeros.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("sa-1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "revenue"}).AddRow(0, 0.0))

	d, err := repo.Owner(context.Background(), "sa-1")
	require.NoError(t, err)
	assert.Equal(t, 0, d.TotalAppointments)
	assert.Equal(t, 0.0, d.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerDashboardCompletedRevenueOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("sa-1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "revenue"}).AddRow(7, 240.50))

	d, err := repo.Owner(context.Background(), "sa-1")
	require.NoError(t, err)
	assert.Equal(t, 7, d.TotalAppointments)
	assert.Equal(t, 240.50, d.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatsRepo(db)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(
			[]string{"users", "owners", "salons", "appointments", "value"}).
			AddRow(12, 3, 4, 40, 1800.0))

	s, err := repo.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, s.TotalUsers)
	assert.Equal(t, 3, s.TotalOwners)
	assert.Equal(t, 4, s.TotalSalons)
	assert.Equal(t, 40, s.TotalAppointments)
	assert.Equal(t, 1800.0, s.TotalBookingValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
