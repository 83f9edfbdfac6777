// Package repository contains data access logic separated from HTTP
// handlers. All queries run over a shared *sql.DB with placeholders; this
// file defines the sentinel errors handlers translate into HTTP statuses.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a row cannot be located. Handlers translate
// this into 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidState is returned when a status transition is attempted from a
// terminal state (completed/cancelled). Handlers translate this into 409.
var ErrInvalidState = errors.New("invalid state")

// ErrEmailExists is returned when registration collides with an existing
// account. Backed by the unique key on users.email, so concurrent
// registrations cannot both succeed.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateBooking is returned when the customer already holds a
// non-cancelled appointment for the same service on the same date.
var ErrDuplicateBooking = errors.New("duplicate booking")

// ErrDuplicateReview is returned when an appointment has already been
// reviewed. Backed by the unique key on reviews.appointment_id.
var ErrDuplicateReview = errors.New("duplicate review")

// ErrReviewNotAllowed is returned when the appointment is not the caller's
// or has not been completed.
var ErrReviewNotAllowed = errors.New("review not allowed")

// ErrServiceUnavailable is returned when booking references a service that
// does not exist, is inactive, or belongs to another salon.
var ErrServiceUnavailable = errors.New("service not found or inactive")

// isDuplicateKey detects MySQL error 1062 (duplicate entry) without
// depending on the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
