package model

import "time"

// Payment status values stored in payments.payment_status. The payment
// lifecycle is independent of the appointment lifecycle.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ValidPaymentStatus reports whether s is one of the allowed status values.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment represents a row in the `payments` table.
type Payment struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
