// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// AppointmentConfirmedEvent is published when an owner confirms an
// appointment by assigning a staff member. It carries enough display data
// for downstream consumers to log or notify without hitting the database.
type AppointmentConfirmedEvent struct {
	AppointmentID   string  `json:"appointment_id"`
	UserID          string  `json:"user_id"`
	CustomerName    string  `json:"customer_name"`
	SalonID         string  `json:"salon_id"`
	SalonName       string  `json:"salon_name"`
	StaffName       string  `json:"staff_name"`
	ServiceName     string  `json:"service_name"`
	AppointmentDate string  `json:"appointment_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	TotalPrice      float64 `json:"total_price"`
	ConfirmedAt     string  `json:"confirmed_at"`
}
