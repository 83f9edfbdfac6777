package model

import "time"

// Review represents a row in the `reviews` table. At most one review may
// reference an appointment (unique key on appointment_id), and only
// completed appointments can be reviewed.
//
// UserName is a join artifact for the salon review listing.
type Review struct {
	ID            string    `json:"id"`
	SalonID       string    `json:"salon_id"`
	UserID        string    `json:"user_id"`
	AppointmentID string    `json:"appointment_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	UserName string `json:"user_name,omitempty"`
}
