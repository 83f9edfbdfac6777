package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizzer/salon-booking/internal/model"
)

var salonRows = []string{"id", "owner_id", "name", "description", "address", "city",
	"state", "zip_code", "country", "phone", "email", "opening_time", "closing_time",
	"rating", "is_active", "created_at", "updated_at"}

func salonRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(salonRows).
		AddRow("sa-1", "owner-1", "Shear Genius", nil, "1 Main St", "Austin",
			nil, nil, "USA", "555-0100", nil, "09:00:00", "18:00:00",
			4.5, true, now, now)
}

func TestSalonUpdateForeignOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSalonRepo(db)
	now := time.Now()

	// Ownership probe misses, but the salon itself exists: forbidden.
	mock.ExpectQuery("SELECT id FROM salons WHERE id = \\? AND owner_id = \\?").
		WithArgs("sa-1", "owner-2").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM salons s WHERE s.id").
		WithArgs("sa-1").
		WillReturnRows(salonRow(now))

	name := "New Name"
	_, err = repo.Update(context.Background(), "sa-1", "owner-2", SalonUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonUpdateMissingSalon(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSalonRepo(db)

	mock.ExpectQuery("SELECT id FROM salons WHERE id = \\? AND owner_id = \\?").
		WithArgs("sa-404", "owner-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM salons s WHERE s.id").
		WithArgs("sa-404").
		WillReturnError(sql.ErrNoRows)

	name := "New Name"
	_, err = repo.Update(context.Background(), "sa-404", "owner-1", SalonUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonCreateRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSalonRepo(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO salons").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM salons s WHERE s.id").
		WillReturnRows(salonRow(now))

	sl, err := repo.Create(context.Background(), &model.Salon{
		OwnerID: "owner-1",
		Name:    "Shear Genius",
		Address: "1 Main St",
		City:    "Austin",
		Phone:   "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "sa-1", sl.ID)
	assert.Equal(t, "USA", sl.Country)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFirstSalonIDByOwnerMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSalonRepo(db)

	mock.ExpectQuery("SELECT id FROM salons WHERE owner_id").
		WithArgs("owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FirstSalonIDByOwner(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
