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

// FilmRepository handles the shared film catalog.
//
// Films are created on first reference by name and never deleted by list operations.
type FilmRepository struct {
	db DBTX
}

// NewFilmRepository creates a new FilmRepository over db, which may be a *sql.DB or *sql.Tx
func NewFilmRepository(db DBTX) *FilmRepository {
	return &FilmRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *FilmRepository) WithTx(tx *sql.Tx) *FilmRepository {
	return &FilmRepository{db: tx}
}

// Get retrieves a film by ID
func (r *FilmRepository) Get(ctx context.Context, id int64) (*models.Film, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, photo, created_at FROM films WHERE id = ?`, id)
	film, err := scanFilm(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, id)
	}
	return film, nil
}

// GetByName retrieves a film by exact name
func (r *FilmRepository) GetByName(ctx context.Context, name string) (*models.Film, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, photo, created_at FROM films WHERE name = ?`, name)
	film, err := scanFilm(row)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	return film, nil
}

// GetOrCreate returns the film named name, inserting it first if it does not exist.
//
// The insert relies on the UNIQUE(name) constraint: a concurrent insert of the same name
// surfaces as a constraint violation, after which the winner's row is read back.
func (r *FilmRepository) GetOrCreate(ctx context.Context, name string) (*models.Film, bool, error) {
	name = shared.NormalizeName(name)
	if err := models.ValidateFilmName(name); err != nil {
		return nil, false, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	film, err := r.GetByName(ctx, name)
	if err == nil {
		return film, false, nil
	}
	if !errors.Is(err, shared.ErrFilmNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `INSERT INTO films (name, created_at) VALUES (?, ?)`, name, now)
	if err != nil {
		if isUniqueViolation(err) {
			film, err := r.GetByName(ctx, name)
			return film, false, err
		}
		return nil, false, fmt.Errorf("failed to insert film: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get film id: %w", err)
	}

	return &models.Film{ID: id, Name: name, CreatedAt: now}, true, nil
}

// SetPhoto sets or clears (empty photo) the catalog photo reference of a film.
func (r *FilmRepository) SetPhoto(ctx context.Context, id int64, photo string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE films SET photo = ? WHERE id = ?`, nullString(photo), id)
	if err != nil {
		return fmt.Errorf("failed to update film photo: %w", err)
	}
	return expectAffected(result, shared.ErrFilmNotFound, id)
}

// Search returns films whose name contains query (ASCII case-insensitive), excluding films already in userID's list.
//
// Results are ordered by lower-cased name. An empty query matches every film.
func (r *FilmRepository) Search(ctx context.Context, userID, query string) ([]models.Film, error) {
	q := `
		SELECT f.id, f.name, f.photo, f.created_at
		FROM films f
		WHERE f.name LIKE ? ESCAPE '\'
		  AND NOT EXISTS (
			SELECT 1 FROM memberships m WHERE m.film_id = f.id AND m.user_id = ?
		  )
		ORDER BY lower(f.name) ASC, f.id ASC
	`
	return r.list(ctx, q, containsPattern(query), userID)
}

// List retrieves the entire catalog ordered by lower-cased name
func (r *FilmRepository) List(ctx context.Context) ([]models.Film, error) {
	return r.list(ctx, `SELECT id, name, photo, created_at FROM films ORDER BY lower(name) ASC, id ASC`)
}

func (r *FilmRepository) list(ctx context.Context, query string, args ...any) ([]models.Film, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	defer rows.Close()

	films := []models.Film{}
	for rows.Next() {
		film, err := scanFilmRow(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return films, nil
}

// scanFilm scans a single [sql.Row] into a [models.Film]
func scanFilm(row *sql.Row) (*models.Film, error) {
	film, err := scanFilmRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrFilmNotFound
	}
	return film, err
}

func scanFilmRow(s scanner) (*models.Film, error) {
	var (
		film  models.Film
		photo sql.NullString
	)

	if err := s.Scan(&film.ID, &film.Name, &photo, &film.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan film: %w", err)
	}

	film.Photo = photo.String
	return &film, nil
}

// nullString stores empty strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
