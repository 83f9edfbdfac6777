package model

import "time"

// Service represents a row in the `services` table. Services are soft
// deleted: historical appointments keep referencing deactivated rows, so
// is_active=0 only removes them from booking and public listings.
type Service struct {
	ID              string    `json:"id"`
	SalonID         string    `json:"salon_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
