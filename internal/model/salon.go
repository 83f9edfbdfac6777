package model

import "time"

// Salon represents a row in the `salons` table. Each salon belongs to a
// single owner account. Rating is a cached scalar recomputed from reviews
// by the rating refresher, never written by request handlers.
//
// OwnerName is populated by list/get queries that join users; it is not a
// column of the salons table.
type Salon struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       *string   `json:"state,omitempty"`
	ZipCode     *string   `json:"zip_code,omitempty"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	OpeningTime *string   `json:"opening_time,omitempty"`
	ClosingTime *string   `json:"closing_time,omitempty"`
	Rating      float64   `json:"rating"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OwnerName string `json:"owner_name,omitempty"`
}
