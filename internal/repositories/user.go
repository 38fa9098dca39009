package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
)

// UserRepository handles persistence for [models.User] accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, sequence, username, password_hash, created_at, updated_at`

// Create inserts a new user into the database with generated ID and sequence.
//
// Returns [shared.ErrUsernameTaken] when the username is already registered.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(ctx, r.db, "users")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO users (id, sequence, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, id, sequence, user.Username(), user.PasswordHash(), user.CreatedAt(), user.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrUsernameTaken, user.Username())
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.SetID(id)
	user.SetSequence(sequence)

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, username)
	}
	return user, nil
}

// Exists reports whether username is registered.
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash of a user
func (r *UserRepository) UpdatePassword(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		user.PasswordHash(), now, user.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := expectAffected(result, shared.ErrUserNotFound, user.ID()); err != nil {
		return err
	}

	user.SetUpdatedAt(now)
	return nil
}

// Delete removes a user; their memberships are removed by the foreign key cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return expectAffected(result, shared.ErrUserNotFound, id)
}

// List retrieves all users in sequence order
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// scanOne scans a single [sql.Row] into a [models.User]
func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scan(s scanner) (*models.User, error) {
	var (
		id           string
		sequence     int
		username     string
		passwordHash string
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := s.Scan(&id, &sequence, &username, &passwordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	user := models.NewUser(sequence, username, passwordHash)
	user.SetID(id)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(updatedAt)

	return user, nil
}

// expectAffected returns notFound wrapped with key when result touched no rows.
func expectAffected(result sql.Result, notFound error, key any) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %v", notFound, key)
	}
	return nil
}
