// Package model defines the row structs persisted by the repository layer.
// Field names mirror the database columns; json tags match the shapes the
// three front ends consume.
package model

import "time"

// Roles stored in users.role. Registration accepts user and owner;
// admin accounts are provisioned out of band.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User represents a row in the `users` table. PasswordHash is never
// serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is stored.
type RefreshToken struct {
	ID        uint64
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
