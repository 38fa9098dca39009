package lists

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/repositories"
)

// Search returns films whose name contains query, ignoring ASCII case, that are not already in userID's list.
//
// The query is matched as given, surrounding whitespace included. Results are sorted by
// lower-cased name. An empty query matches every unlisted film.
func (e *Engine) Search(ctx context.Context, userID, query string) ([]models.Film, error) {
	films, err := e.films.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search films: %w", err)
	}

	e.logger.Debug("searched catalog", "user", userID, "query", query, "results", len(films))
	return films, nil
}

// Catalog returns every known film sorted by lower-cased name.
func (e *Engine) Catalog(ctx context.Context) ([]models.Film, error) {
	films, err := e.films.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return films, nil
}

// SetFilmPhoto sets or clears (empty photo) the catalog photo of filmID.
//
// Entries without a photo of their own show the catalog photo.
func (e *Engine) SetFilmPhoto(ctx context.Context, filmID int64, photo string) (models.Film, error) {
	var film *models.Film

	err := repositories.RunInTx(ctx, e.db, func(tx *sql.Tx) error {
		films := e.films.WithTx(tx)
		if err := films.SetPhoto(ctx, filmID, photo); err != nil {
			return err
		}

		var err error
		film, err = films.Get(ctx, filmID)
		return err
	})
	if err != nil {
		return models.Film{}, fmt.Errorf("failed to set film photo: %w", err)
	}

	e.logger.Info("set film photo", "film_id", film.ID, "name", film.Name, "photo", film.Photo)
	return *film, nil
}
