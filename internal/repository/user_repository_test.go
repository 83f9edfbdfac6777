package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRows = []string{"id", "email", "password_hash", "first_name", "last_name",
	"phone", "avatar_url", "role", "is_active", "created_at", "updated_at"}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jo@example.com' for key 'uq_users_email'"))

	_, err = repo.Create(context.Background(), "jo@example.com", "secret99", "Jo", "Doe", "", "user", 4)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateReturnsInsertedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", "hash", "Jo", "Doe", nil, nil, "owner", true, now, now))

	u, err := repo.Create(context.Background(), "Jo@Example.com", "secret99", "Jo", "Doe", "", "owner", 4)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "owner", u.Role)
	assert.Nil(t, u.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("jo@example.com").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow("u-1", "jo@example.com", "hash", "Jo", "Doe", "555-0100", nil, "user", true, now, now))

	u, err := repo.GetByEmail(context.Background(), "  JO@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "555-0100", *u.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
