package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/ehs-records/models"
	"github.com/blogem/ehs-records/repositories"
)

// UserService interface defines local account operations
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Authenticate returns models.ErrUnauthorized for an unknown user or a wrong password
	Authenticate(ctx context.Context, form *models.LoginForm) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	form := &models.LoginForm{Username: username, Password: password}
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     models.NormalizedUsername(username),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.WithField("user", user.Username).Info("user registered")
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, form *models.LoginForm) (*models.User, error) {
	if errs := form.Validate(); errs.HasErrors() {
		return nil, errs
	}

	user, err := s.repo.GetByUsername(ctx, models.NormalizedUsername(form.Username))
	if models.IsNotFound(err) {
		loginMetric.WithLabelValues("failure").Inc()
		return nil, errors.Wrap(models.ErrUnauthorized, "invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		loginMetric.WithLabelValues("failure").Inc()
		return nil, errors.Wrap(models.ErrUnauthorized, "invalid username or password")
	}

	loginMetric.WithLabelValues("success").Inc()
	return user, nil
}
