package lists

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

// Service defines the list and catalog operations exposed to the HTTP server, CLI and TUI.
type Service interface {
	// NextOrder returns the order a newly added entry would receive.
	NextOrder(ctx context.Context, userID string) (int, error)

	// Add appends the film named name to the user's list, creating the film if needed.
	// The returned bool is false when the film was already listed.
	Add(ctx context.Context, userID, name string) (models.Entry, bool, error)

	// Remove deletes an entry and renumbers the remainder.
	Remove(ctx context.Context, userID string, membershipID int64) (models.Entry, error)

	// Reorder renumbers the user's entries to 1..N, keeping their relative order.
	Reorder(ctx context.Context, userID string) error

	// ApplySort sets the list order to ids, top to bottom.
	ApplySort(ctx context.Context, userID string, ids []int64) ([]models.Entry, error)

	// List returns the user's entries in order.
	List(ctx context.Context, userID string, page models.Page) ([]models.Entry, error)

	// SetPhoto attaches a photo reference to an entry; an empty photo clears it.
	SetPhoto(ctx context.Context, userID string, membershipID int64, photo string) (models.Entry, error)

	// Search returns catalog films matching query that are not already in the user's list.
	Search(ctx context.Context, userID, query string) ([]models.Film, error)
}

// Engine implements [Service] on top of the film and membership repositories.
type Engine struct {
	db          *sql.DB
	films       *repositories.FilmRepository
	memberships *repositories.MembershipRepository
	locks       *userLocks
	logger      *log.Logger
}

var _ Service = (*Engine)(nil)

// NewEngine creates an Engine over db. A nil logger falls back to [shared.NewLogger] on stderr.
func NewEngine(db *sql.DB, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Engine{
		db:          db,
		films:       repositories.NewFilmRepository(db),
		memberships: repositories.NewMembershipRepository(db),
		locks:       newUserLocks(),
		logger:      shared.WithLogger(logger, "component", "lists"),
	}
}

// txRepos are repositories bound to a single transaction.
type txRepos struct {
	films       *repositories.FilmRepository
	memberships *repositories.MembershipRepository
}

// mutate runs fn under userID's lock inside one transaction.
//
// fn must only use the repositories it is given; the engine's own repositories
// are bound to the pool and would wait on the transaction's connection.
func (e *Engine) mutate(ctx context.Context, userID string, fn func(r txRepos) error) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", shared.ErrInvalidInput)
	}

	unlock := e.locks.lock(userID)
	defer unlock()

	return repositories.RunInTx(ctx, e.db, func(tx *sql.Tx) error {
		return fn(txRepos{
			films:       e.films.WithTx(tx),
			memberships: e.memberships.WithTx(tx),
		})
	})
}

// NextOrder returns 1 for an empty list, otherwise the highest order plus one.
func (e *Engine) NextOrder(ctx context.Context, userID string) (int, error) {
	return nextOrder(ctx, e.memberships, userID)
}

func nextOrder(ctx context.Context, memberships *repositories.MembershipRepository, userID string) (int, error) {
	maxOrder, err := memberships.MaxOrder(ctx, userID)
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// Add appends the film named name to userID's list.
//
// The film is created in the catalog on first reference. Adding a film that is
// already listed leaves the list untouched and returns the existing entry.
func (e *Engine) Add(ctx context.Context, userID, name string) (models.Entry, bool, error) {
	var (
		entry models.Entry
		added bool
	)

	err := e.mutate(ctx, userID, func(r txRepos) error {
		film, created, err := r.films.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if created {
			e.logger.Debug("created film", "film_id", film.ID, "name", film.Name)
		}

		existing, err := r.memberships.GetByFilm(ctx, userID, film.ID)
		switch {
		case err == nil:
			entry, err = r.memberships.Entry(ctx, userID, existing.ID())
			return err
		case !errors.Is(err, shared.ErrNotFound):
			return err
		}

		order, err := nextOrder(ctx, r.memberships, userID)
		if err != nil {
			return err
		}

		m := models.NewMembership(userID, film.ID, order)
		if err := r.memberships.Create(ctx, m); err != nil {
			return err
		}

		entry, err = r.memberships.Entry(ctx, userID, m.ID())
		added = err == nil
		return err
	})
	if err != nil {
		return models.Entry{}, false, fmt.Errorf("failed to add film: %w", err)
	}

	if added {
		e.logger.Info("added film", "user", userID, "name", entry.Name, "order", entry.Order)
	}
	return entry, added, nil
}

// Remove deletes userID's entry membershipID and renumbers the remaining entries in the same transaction.
//
// Returns [shared.ErrNotFound] when the entry does not exist or belongs to another user.
func (e *Engine) Remove(ctx context.Context, userID string, membershipID int64) (models.Entry, error) {
	var entry models.Entry

	err := e.mutate(ctx, userID, func(r txRepos) error {
		var err error
		if entry, err = r.memberships.Entry(ctx, userID, membershipID); err != nil {
			return err
		}

		if err := r.memberships.Delete(ctx, userID, membershipID); err != nil {
			return err
		}

		return reorder(ctx, r.memberships, userID)
	})
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to remove entry: %w", err)
	}

	e.logger.Info("removed film", "user", userID, "name", entry.Name)
	return entry, nil
}

// Reorder renumbers userID's entries to 1..N in their current order.
func (e *Engine) Reorder(ctx context.Context, userID string) error {
	err := e.mutate(ctx, userID, func(r txRepos) error {
		return reorder(ctx, r.memberships, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to reorder list: %w", err)
	}
	return nil
}

func reorder(ctx context.Context, memberships *repositories.MembershipRepository, userID string) error {
	current, err := memberships.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	return memberships.UpdateOrders(ctx, userID, renumber(current))
}

// ApplySort makes ids, top to bottom, the new order of userID's list and returns the reordered entries.
//
// ids must name every entry in the list exactly once. An id that is not one of the
// user's entries yields [shared.ErrNotFound]; a missing or repeated id yields
// [shared.ErrIncompleteSort]. Nothing is written when validation fails.
func (e *Engine) ApplySort(ctx context.Context, userID string, ids []int64) ([]models.Entry, error) {
	var (
		entries []models.Entry
		changed int
	)

	err := e.mutate(ctx, userID, func(r txRepos) error {
		current, err := r.memberships.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		changes, err := sortChanges(current, ids)
		if err != nil {
			return err
		}
		changed = len(changes)

		if err := r.memberships.UpdateOrders(ctx, userID, changes); err != nil {
			return err
		}

		entries, err = r.memberships.Entries(ctx, userID, models.Page{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sort list: %w", err)
	}

	e.logger.Debug("sorted list", "user", userID, "entries", len(ids), "changed", changed)
	return entries, nil
}

// List returns userID's entries ordered by position.
func (e *Engine) List(ctx context.Context, userID string, page models.Page) ([]models.Entry, error) {
	entries, err := e.memberships.Entries(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// SetPhoto sets or clears the photo reference on userID's entry membershipID.
func (e *Engine) SetPhoto(ctx context.Context, userID string, membershipID int64, photo string) (models.Entry, error) {
	var entry models.Entry

	err := e.mutate(ctx, userID, func(r txRepos) error {
		if err := r.memberships.SetPhoto(ctx, userID, membershipID, photo); err != nil {
			return err
		}

		var err error
		entry, err = r.memberships.Entry(ctx, userID, membershipID)
		return err
	})
	if err != nil {
		return models.Entry{}, fmt.Errorf("failed to set photo: %w", err)
	}

	return entry, nil
}
