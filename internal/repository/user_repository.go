package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sizzer/salon-booking/internal/model"
	"github.com/sizzer/salon-booking/internal/utils"
)

// UserRepo encapsulates all queries against the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, password_hash, first_name, last_name, phone, avatar_url, role, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u      model.User
		phone  sql.NullString
		avatar sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&phone, &avatar, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	return u, nil
}

// Create hashes the password, assigns a UUID and inserts the user.
// Returns ErrEmailExists when the unique key on email rejects the row.
func (r *UserRepo) Create(ctx context.Context, email, password, firstName, lastName, phone, role string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	id := uuid.NewString()
	var phoneVal any
	if phone != "" {
		phoneVal = phone
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, is_active) VALUES (?,?,?,?,?,?,?,1)",
		id, email, hash, firstName, lastName, phoneVal, role)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
}

// GetActiveByID fetches a user by id, restricted to active accounts.
// Returns sql.ErrNoRows for deactivated accounts.
func (r *UserRepo) GetActiveByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND is_active = 1 LIMIT 1", id))
}

// ListAll returns every account, newest first. Admin surface only.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile applies a partial update: nil fields retain their prior
// value via COALESCE.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, firstName, lastName, phone, avatarURL *string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users
		 SET first_name = COALESCE(?, first_name),
		     last_name  = COALESCE(?, last_name),
		     phone      = COALESCE(?, phone),
		     avatar_url = COALESCE(?, avatar_url)
		 WHERE id = ?`,
		firstName, lastName, phone, avatarURL, id)
	return err
}
