package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new account
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.GetByUsername(ctx, user.Username); err == nil {
		return models.Conflictf("username %s is already taken", user.Username)
	} else if !models.IsNotFound(err) {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO users (id, username, password) VALUES (?, ?, ?)"),
		user.ID, user.Username, user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves an account by its username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT id, username, password FROM users WHERE username = ?"),
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundf("user %s not found", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Count returns the number of accounts
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
