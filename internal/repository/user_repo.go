package repository

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository backed by Postgres
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, display_name, photo_url, role, external_id, password_hash, created_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	sql := `INSERT INTO users (username, email, display_name, photo_url, role, external_id, password_hash, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRow(ctx, sql, u.Username, u.Email, u.DisplayName, u.PhotoURL, u.Role, u.ExternalID, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, sql, id), "ID")
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, sql, email), "email")
}

// FindByExternalID retrieves a user by their external auth provider ID
func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, sql, externalID), "external ID")
}

func (r *userRepository) scanOne(row pgx.Row, by string) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.PhotoURL, &u.Role, &u.ExternalID, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", by, err)
	}
	return u, nil
}
