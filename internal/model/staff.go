package model

import "time"

// Staff represents a row in the `staff` table. Staff members belong to
// exactly one salon and are soft deleted like services.
type Staff struct {
	ID        string    `json:"id"`
	SalonID   string    `json:"salon_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
