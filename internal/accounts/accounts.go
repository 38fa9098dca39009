// Package accounts registers users and verifies their credentials.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/repositories"
	"github.com/desertthunder/films/internal/shared"
)

// Service manages user accounts.
type Service struct {
	users  *repositories.UserRepository
	params Params
	logger *log.Logger

	// dummyHash is verified against when the username is unknown so both failure paths cost the same.
	dummyHash string
}

// NewService creates an accounts Service over db hashing with p.
func NewService(db *sql.DB, p Params, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	dummy, err := HashPassword("films-dummy-password", p)
	if err != nil {
		return nil, err
	}

	return &Service{
		users:     repositories.NewUserRepository(db),
		params:    p,
		logger:    shared.WithLogger(logger, "component", "accounts"),
		dummyHash: dummy,
	}, nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len([]rune(password)) < models.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, models.MinPasswordLength)
	}
	return nil
}

// Register creates a user named username with password.
//
// Returns [shared.ErrInvalidInput] for a malformed username or short password
// and [shared.ErrUsernameTaken] when the username is registered.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := models.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password, s.params)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(0, username, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "username", username, "id", user.ID())
	return user, nil
}

// Available reports whether username is free to register.
func (s *Service) Available(ctx context.Context, username string) (bool, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Authenticate returns the user identified by username and password.
//
// An unknown username and a wrong password both yield [shared.ErrInvalidCredentials].
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, shared.ErrUserNotFound) {
		_, _ = VerifyPassword(password, s.dummyHash)
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash())
	if err != nil {
		s.logger.Error("stored password hash is unreadable", "username", username, "error", err)
		return nil, shared.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Warn("failed login", "username", username)
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.Get(ctx, id)
}

// Lookup returns the user named username.
func (s *Service) Lookup(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// ChangePassword replaces the password of the user named username.
func (s *Service) ChangePassword(ctx context.Context, username, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := HashPassword(password, s.params)
	if err != nil {
		return err
	}

	user.SetPasswordHash(hash)
	return s.users.UpdatePassword(ctx, user)
}

// Delete removes the user named username together with their list.
func (s *Service) Delete(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID()); err != nil {
		return err
	}

	s.logger.Info("deleted user", "username", username)
	return nil
}

// List returns every user in registration order.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}
