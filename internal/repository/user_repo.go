package repository

import (
	"context"
	"database/sql"

	"github.com/dengue-surveillance-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user and assigns its identifier
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Active,
	).Scan(&user.ID, &user.CreatedAt)
}

// GetActiveByEmail retrieves an active user by email. Returns (nil, nil)
// when no active user matches, so callers cannot distinguish unknown from
// deactivated accounts.
func (r *userRepo) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, active, created_at
		FROM users
		WHERE email = $1 AND active = TRUE
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Active, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// EnsureSeed inserts a default user unless the email is already taken
func (r *userRepo) EnsureSeed(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
	)
	return err
}
