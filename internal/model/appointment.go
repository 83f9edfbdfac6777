package model

import "time"

// Appointment status values. Transitions:
//
//	pending  --(assign staff)-->  confirmed
//	pending|confirmed --(owner)-> completed
//	pending|confirmed ----------> cancelled
//
// completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// IsTerminalStatus reports whether no further transition is allowed.
func IsTerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment represents a row in the `appointments` table.
// AppointmentDate is formatted YYYY-MM-DD, the time fields HH:MM:SS,
// matching what the MySQL DATE/TIME columns hold.
//
// SalonName, StaffName, ServiceName and CustomerName are join artifacts for
// the list views, not columns.
type Appointment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SalonID         string    `json:"salon_id"`
	ServiceID       *string   `json:"service_id,omitempty"`
	StaffID         *string   `json:"staff_id,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	TotalPrice      float64   `json:"total_price"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	SalonName    string `json:"salon_name,omitempty"`
	StaffName    string `json:"staff_name,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}
