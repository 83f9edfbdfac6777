package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizzer/salon-booking/internal/model"
)

var serviceRows = []string{"id", "salon_id", "name", "category", "description",
	"price", "duration_minutes", "is_active", "created_at", "updated_at"}

func TestServiceDeactivateIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewServiceRepo(db)

	// First call flips the row, second touches nothing. Both succeed.
	mock.ExpectExec("UPDATE services SET is_active = 0").
		WithArgs("sv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE services SET is_active = 0").
		WithArgs("sv-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Deactivate(context.Background(), "sv-1"))
	assert.NoError(t, repo.Deactivate(context.Background(), "sv-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceListBySalonFiltersInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewServiceRepo(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM services WHERE salon_id = \\? AND is_active = 1").
		WithArgs("sa-1").
		WillReturnRows(sqlmock.NewRows(serviceRows).
			AddRow("sv-1", "sa-1", "Haircut", "Hair", nil, 35.0, 30, true, now, now))

	services, err := repo.ListBySalon(context.Background(), "sa-1", false)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceCreateAppliesDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewServiceRepo(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO services").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM services WHERE id").
		WillReturnRows(sqlmock.NewRows(serviceRows).
			AddRow("sv-1", "sa-1", "Coloring", "Other", nil, 80.0, 30, true, now, now))

	sv, err := repo.Create(context.Background(), &model.Service{
		SalonID: "sa-1",
		Name:    "Coloring",
		Price:   80.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Other", sv.Category)
	assert.Equal(t, 30, sv.DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
