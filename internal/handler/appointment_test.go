package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizzer/salon-booking/internal/repository"
)

func newAppointmentEcho(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := NewAppointmentHandler(repository.NewAppointmentRepo(db))

	e := echo.New()
	asUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", "u-1")
			c.Set("role", "user")
			return next(c)
		}
	}
	e.POST("/api/appointments", h.Create, asUser)
	e.DELETE("/api/appointments/cancel/:id", h.Cancel, asUser)
	return e, mock
}

func TestBookingRejectsPastDate(t *testing.T) {
	e, _ := newAppointmentEcho(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	body := `{"salon_id":"sa-1","service_id":"sv-1","appointment_date":"` + yesterday +
		`","start_time":"10:00","end_time":"10:30"}`

	rec := postJSON(e, "/api/appointments", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "past")
}

func TestBookingRejectsMissingFields(t *testing.T) {
	e, _ := newAppointmentEcho(t)

	rec := postJSON(e, "/api/appointments", `{"start_time":"10:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "salon_id")
	assert.Contains(t, rec.Body.String(), "appointment_date")
	assert.Contains(t, rec.Body.String(), "end_time")
}

func TestBookingKeepsClientPrice(t *testing.T) {
	e, mock := newAppointmentEcho(t)
	now := time.Now()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM services").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(45.0))
	mock.ExpectQuery("SELECT id FROM appointments").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(sqlmock.AnyArg(), "u-1", "sa-1", "sv-1", sqlmock.AnyArg(),
			tomorrow, "10:00", "10:30", 99.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM appointments a WHERE a.id").
		WillReturnRows(sqlmock.NewRows(testAppointmentRows()).
			AddRow("ap-1", "u-1", "sa-1", "sv-1", nil, tomorrow, "10:00:00",
				"10:30:00", 99.0, nil, "pending", now, now))
	mock.ExpectCommit()

	body := `{"salon_id":"sa-1","service_id":"sv-1","appointment_date":"` + tomorrow +
		`","start_time":"10:00","end_time":"10:30","total_price":99}`
	rec := postJSON(e, "/api/appointments", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":99`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingWithoutService(t *testing.T) {
	e, mock := newAppointmentEcho(t)
	now := time.Now()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	// No service means no price lookup and no duplicate guard.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM appointments a WHERE a.id").
		WillReturnRows(sqlmock.NewRows(testAppointmentRows()).
			AddRow("ap-1", "u-1", "sa-1", nil, nil, tomorrow, "10:00:00",
				"10:30:00", 0.0, nil, "pending", now, now))
	mock.ExpectCommit()

	body := `{"salon_id":"sa-1","appointment_date":"` + tomorrow +
		`","start_time":"10:00","end_time":"10:30"}`
	rec := postJSON(e, "/api/appointments", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingDuplicateReturnsConflict(t *testing.T) {
	e, mock := newAppointmentEcho(t)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM services").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(45.0))
	mock.ExpectQuery("SELECT id FROM appointments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ap-existing"))
	mock.ExpectRollback()

	body := `{"salon_id":"sa-1","service_id":"sv-1","appointment_date":"` + tomorrow +
		`","start_time":"10:00","end_time":"10:30"}`
	rec := postJSON(e, "/api/appointments", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingInactiveServiceReturnsNotFound(t *testing.T) {
	e, mock := newAppointmentEcho(t)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM services").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	body := `{"salon_id":"sa-1","service_id":"sv-9","appointment_date":"` + tomorrow +
		`","start_time":"10:00","end_time":"10:30"}`
	rec := postJSON(e, "/api/appointments", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func testAppointmentRows() []string {
	return []string{"id", "user_id", "salon_id", "service_id", "staff_id",
		"appointment_date", "start_time", "end_time", "total_price", "notes", "status",
		"created_at", "updated_at"}
}

func TestCancelForeignAppointmentForbidden(t *testing.T) {
	e, mock := newAppointmentEcho(t)
	now := time.Now()

	mock.ExpectQuery("SELECT status FROM appointments").
		WithArgs("ap-1", "u-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM appointments a WHERE a.id").
		WillReturnRows(sqlmock.NewRows(testAppointmentRows()).
			AddRow("ap-1", "u-other", "sa-1", nil, nil, "2026-10-01", "10:00:00",
				"10:30:00", 45.0, nil, "pending", now, now))

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/cancel/ap-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, strings.ToLower(rec.Body.String()), "your own")
	assert.NoError(t, mock.ExpectationsWereMet())
}
