package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/ehs-records/database"
	"github.com/blogem/ehs-records/models"
)

// preferencesRepository implements PreferencesRepository interface
type preferencesRepository struct {
	db *database.DB
}

// NewPreferencesRepository creates a new user preferences repository
func NewPreferencesRepository(db *database.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

// GetByUserID retrieves the saved preferences of a user
func (r *preferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := `
		SELECT id, user_id, system, group_name, site, is_first_time, role, created_at, updated_at
		FROM user_preferences
		WHERE user_id = ?
	`

	var p models.UserPreferences
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), userID).Scan(
		&p.ID,
		&p.UserID,
		&p.System,
		&p.Group,
		&p.Site,
		&p.IsFirstTime,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundf("no preferences saved for user %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}
	return &p, nil
}

// Upsert inserts or replaces the preferences of prefs.UserID
func (r *preferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	now := time.Now().UTC()
	if prefs.CreatedAt.IsZero() {
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	query := `
		INSERT INTO user_preferences (user_id, system, group_name, site, is_first_time, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			system = excluded.system,
			group_name = excluded.group_name,
			site = excluded.site,
			is_first_time = excluded.is_first_time,
			role = excluded.role,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		prefs.UserID,
		prefs.System,
		prefs.Group,
		prefs.Site,
		prefs.IsFirstTime,
		prefs.Role,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user preferences: %w", err)
	}

	saved, err := r.GetByUserID(ctx, prefs.UserID)
	if err != nil {
		return err
	}
	*prefs = *saved
	return nil
}
