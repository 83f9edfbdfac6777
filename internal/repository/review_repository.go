package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
)

// ReviewRepo handles salon reviews. A review is only allowed for the
// author's own completed appointment, at most one per appointment.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = `r.id, r.salon_id, r.user_id, r.appointment_id,
	r.rating, r.comment, r.created_at`

func scanReview(row interface{ Scan(...any) error }, userName *sql.NullString) (model.Review, error) {
	var (
		rv      model.Review
		comment sql.NullString
	)
	dest := []any{&rv.ID, &rv.SalonID, &rv.UserID, &rv.AppointmentID,
		&rv.Rating, &comment, &rv.CreatedAt}
	if userName != nil {
		dest = append(dest, userName)
	}
	if err := row.Scan(dest...); err != nil {
		return model.Review{}, err
	}
	if comment.Valid {
		rv.Comment = &comment.String
	}
	return rv, nil
}

// ListBySalon returns the salon's reviews newest first, with the author's
// display name joined in.
func (r *ReviewRepo) ListBySalon(ctx context.Context, salonID string) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reviewColumns+`,
		 CONCAT(u.first_name, ' ', u.last_name) AS user_name
		 FROM reviews r
		 LEFT JOIN users u ON r.user_id = u.id
		 WHERE r.salon_id = ?
		 ORDER BY r.created_at DESC`, salonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var userName sql.NullString
		rv, err := scanReview(rows, &userName)
		if err != nil {
			return nil, err
		}
		rv.UserName = userName.String
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Create inserts a review after verifying the appointment belongs to the
// author, targets the given salon and is completed. The unique key on
// appointment_id turns a second review into ErrDuplicateReview.
func (r *ReviewRepo) Create(ctx context.Context, userID, salonID, appointmentID string, rating int, comment *string) (model.Review, error) {
	var status string
	err := r.DB.QueryRowContext(ctx,
		"SELECT status FROM appointments WHERE id = ? AND user_id = ? AND salon_id = ?",
		appointmentID, userID, salonID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, ErrReviewNotAllowed
	}
	if err != nil {
		return model.Review{}, err
	}
	if status != model.StatusCompleted {
		return model.Review{}, ErrReviewNotAllowed
	}

	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO reviews (id, salon_id, user_id, appointment_id, rating, comment)
		 VALUES (?,?,?,?,?,?)`,
		id, salonID, userID, appointmentID, rating, comment)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Review{}, ErrDuplicateReview
		}
		return model.Review{}, err
	}
	return scanReview(r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews r WHERE r.id = ?", id), nil)
}

// DeleteByAuthor removes the author's own review.
func (r *ReviewRepo) DeleteByAuthor(ctx context.Context, id, userID string) error {
	var owner string
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM reviews WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	return err
}
