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

// MembershipRepository handles users' ordered film lists.
//
// Every query is scoped by user ID, so a membership owned by another user behaves as if it did not exist.
type MembershipRepository struct {
	db DBTX
}

// NewMembershipRepository creates a new MembershipRepository over db, which may be a *sql.DB or *sql.Tx
func NewMembershipRepository(db DBTX) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *MembershipRepository) WithTx(tx *sql.Tx) *MembershipRepository {
	return &MembershipRepository{db: tx}
}

// OrderChange moves membership ID to Order.
type OrderChange struct {
	ID    int64
	Order int
}

const membershipColumns = `id, user_id, film_id, position, photo, created_at, updated_at`

const entryQuery = `
	SELECT m.id, m.film_id, f.name, COALESCE(m.photo, f.photo, ''), m.position
	FROM memberships m
	JOIN films f ON f.id = m.film_id
`

// Create inserts a membership and sets its generated ID.
//
// Returns [shared.ErrUserNotFound] when the owning user does not exist.
func (r *MembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO memberships (user_id, film_id, position, photo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		m.UserID(),
		m.FilmID(),
		m.Order(),
		nullString(m.Photo()),
		m.CreatedAt(),
		m.UpdatedAt(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrUserNotFound, m.UserID())
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get membership id: %w", err)
	}

	m.SetID(id)
	return nil
}

// GetByFilm retrieves userID's membership for filmID
func (r *MembershipRepository) GetByFilm(ctx context.Context, userID string, filmID int64) (*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = ? AND film_id = ?`
	m, err := scanMembership(r.db.QueryRowContext(ctx, query, userID, filmID))
	if err != nil {
		return nil, fmt.Errorf("%w: film %d", err, filmID)
	}
	return m, nil
}

// MaxOrder returns the highest order in userID's list, or 0 when the list is empty.
func (r *MembershipRepository) MaxOrder(ctx context.Context, userID string) (int, error) {
	var maxOrder int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM memberships WHERE user_id = ?`, userID,
	).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to get max order: %w", err)
	}
	return maxOrder, nil
}

// ListByUser retrieves userID's memberships by current order, ties broken by ID
func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = ? ORDER BY position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		m, err := scanMembershipRow(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return memberships, nil
}

// Delete removes userID's membership id.
func (r *MembershipRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return expectAffected(result, shared.ErrNotFound, fmt.Sprintf("membership %d", id))
}

// UpdateOrders writes each change with a single prepared statement.
//
// Callers pass only rows whose order actually changed.
func (r *MembershipRepository) UpdateOrders(ctx context.Context, userID string, changes []OrderChange) error {
	if len(changes) == 0 {
		return nil
	}

	preparer, ok := r.db.(interface {
		PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	})
	if !ok {
		return fmt.Errorf("repository connection cannot prepare statements")
	}

	stmt, err := preparer.PrepareContext(ctx, `UPDATE memberships SET position = ?, updated_at = ? WHERE user_id = ? AND id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare order update: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, c := range changes {
		result, err := stmt.ExecContext(ctx, c.Order, now, userID, c.ID)
		if err != nil {
			return fmt.Errorf("failed to update order of membership %d: %w", c.ID, err)
		}
		if err := expectAffected(result, shared.ErrNotFound, fmt.Sprintf("membership %d", c.ID)); err != nil {
			return err
		}
	}

	return nil
}

// SetPhoto sets or clears (empty photo) the photo reference of userID's membership id.
func (r *MembershipRepository) SetPhoto(ctx context.Context, userID string, id int64, photo string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET photo = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		nullString(photo), time.Now().UTC(), userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership photo: %w", err)
	}
	return expectAffected(result, shared.ErrNotFound, fmt.Sprintf("membership %d", id))
}

// Entries retrieves userID's list joined with film data, ordered by position.
func (r *MembershipRepository) Entries(ctx context.Context, userID string, page models.Page) ([]models.Entry, error) {
	query := entryQuery + ` WHERE m.user_id = ? ORDER BY m.position ASC, m.id ASC`
	args := []any{userID}

	if page.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit, max(page.Offset, 0))
	} else if page.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, page.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.FilmID, &e.Name, &e.Photo, &e.Order); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Entry retrieves a single joined entry of userID by membership id.
func (r *MembershipRepository) Entry(ctx context.Context, userID string, id int64) (models.Entry, error) {
	var e models.Entry
	err := r.db.QueryRowContext(ctx, entryQuery+` WHERE m.user_id = ? AND m.id = ?`, userID, id).
		Scan(&e.ID, &e.FilmID, &e.Name, &e.Photo, &e.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: membership %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}
	return e, nil
}

// scanMembership scans a single [sql.Row] into a [models.Membership]
func scanMembership(row *sql.Row) (*models.Membership, error) {
	m, err := scanMembershipRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	return m, err
}

func scanMembershipRow(s scanner) (*models.Membership, error) {
	var (
		id        int64
		userID    string
		filmID    int64
		order     int
		photo     sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	if err := s.Scan(&id, &userID, &filmID, &order, &photo, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan membership: %w", err)
	}

	m := models.NewMembership(userID, filmID, order)
	m.SetID(id)
	m.SetPhoto(photo.String)
	m.SetCreatedAt(createdAt)
	m.SetUpdatedAt(updatedAt)

	return m, nil
}
