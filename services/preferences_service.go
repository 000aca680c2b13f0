package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
)

// PreferencesService interface defines per-user preference operations
type PreferencesService interface {
	// Get returns the stored preferences or the defaults when none were saved
	Get(ctx context.Context, userID string) (models.UserPreferences, error)
	Save(ctx context.Context, userID string, form *models.UserPreferencesForm) (*models.UserPreferences, error)
}

// preferencesService implements PreferencesService interface
type preferencesService struct {
	repo repositories.PreferencesRepository
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(repo repositories.PreferencesRepository) PreferencesService {
	return &preferencesService{repo: repo}
}

func (s *preferencesService) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	prefs, err := s.repo.GetByUserID(ctx, userID)
	if models.IsNotFound(err) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return models.UserPreferences{}, err
	}
	return *prefs, nil
}

func (s *preferencesService) Save(ctx context.Context, userID string, form *models.UserPreferencesForm) (*models.UserPreferences, error) {
	if strings.TrimSpace(userID) == "" {
		var errs models.ValidationErrors
		errs.Add("userId", "User ID is required")
		return nil, errs
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := form.Apply(current)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, next); err != nil {
		return nil, errors.Wrapf(err, "failed to save preferences for %s", userID)
	}
	return next, nil
}
