package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spendwise/internal/metrics"
	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/rs/zerolog/log"
)

var (
	// ErrDuplicateAccount is returned when the email is already registered.
	ErrDuplicateAccount = errors.New("this email is already registered")
	// ErrAuthFailure is returned for any bad sign-in; it never says which field was wrong.
	ErrAuthFailure = errors.New("invalid email or password")
)

// Service handles account creation and credential checks.
type Service struct {
	db *storage.DB
}

// NewService creates a new Service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

// Signup validates the form and stores a new user with a hashed password.
func (s *Service) Signup(ctx context.Context, form SignupForm) (*models.User, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.db.GetUserByEmail(ctx, form.Email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, form.Name, form.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	metrics.NewUsersTotal.Inc()
	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Signin returns the user matching email and password or ErrAuthFailure.
func (s *Service) Signin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, ErrAuthFailure
	}

	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !CheckPassword(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, ErrAuthFailure
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return user, nil
}
