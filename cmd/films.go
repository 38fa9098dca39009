package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/ui"
	"github.com/urfave/cli/v3"
)

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an entry ID", shared.ErrInvalidArgument, value)
	}
	return id, nil
}

func (r *Runner) writeEntries(owner string, entries []models.Entry) error {
	r.writePlainHeader(fmt.Sprintf("Films of %s (%d)", owner, len(entries)))
	for _, e := range entries {
		line := fmt.Sprintf("%3d. %s", e.Order, e.Name)
		if e.Photo != "" {
			line += " " + ui.Muted(e.Photo)
		}
		if err := r.writePlain("%s %s\n", line, ui.Muted(fmt.Sprintf("[id %d]", e.ID))); err != nil {
			return err
		}
	}
	return nil
}

// ListShow prints a user's list in order.
func (r *Runner) ListShow(ctx context.Context, cmd *cli.Command) error {
	userID, username, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	page := models.Page{Limit: cmd.Int("limit"), Offset: cmd.Int("offset")}
	entries, err := r.engine.List(ctx, userID, page)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	return r.writeEntries(username, entries)
}

// ListAdd appends a film to a user's list.
func (r *Runner) ListAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}
	userID, _, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	entry, added, err := r.engine.Add(ctx, userID, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entry, true)
	}

	if !added {
		return r.writePlain("%s\n", ui.Warn(fmt.Sprintf("%q is already #%d in the list", entry.Name, entry.Order)))
	}
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Added %q to the list of films at #%d", entry.Name, entry.Order)))
}

// ListRemove deletes an entry and renumbers the list.
func (r *Runner) ListRemove(ctx context.Context, cmd *cli.Command) error {
	value, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	id, err := parseID(value)
	if err != nil {
		return err
	}
	userID, _, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	entry, err := r.engine.Remove(ctx, userID, id)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Deleted %q from the list of films", entry.Name)))
}

// ListSort applies a full top-to-bottom ordering given as entry IDs.
func (r *Runner) ListSort(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()

	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	userID, username, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	entries, err := r.engine.ApplySort(ctx, userID, ids)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	return r.writeEntries(username, entries)
}

// ListReorder renumbers a list to 1..N.
func (r *Runner) ListReorder(ctx context.Context, cmd *cli.Command) error {
	userID, username, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	if err := r.engine.Reorder(ctx, userID); err != nil {
		return err
	}

	return r.writePlain("%s\n", ui.Success("✓ Renumbered the list of "+username))
}

// ListPhoto sets an entry's photo reference; an empty photo clears it.
func (r *Runner) ListPhoto(ctx context.Context, cmd *cli.Command) error {
	value, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	id, err := parseID(value)
	if err != nil {
		return err
	}
	userID, _, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	entry, err := r.engine.SetPhoto(ctx, userID, id, cmd.StringArg("photo"))
	if err != nil {
		return err
	}

	if entry.Photo == "" {
		return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Cleared the photo of %q", entry.Name)))
	}
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Set the photo of %q to %s", entry.Name, entry.Photo)))
}

// ListSearch prints catalog films matching a query that the user has not listed.
func (r *Runner) ListSearch(ctx context.Context, cmd *cli.Command) error {
	userID, _, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	query := cmd.StringArg("query")
	films, err := r.engine.Search(ctx, userID, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(films, true)
	}

	if len(films) == 0 {
		return r.writePlain("%s\n", ui.Muted(fmt.Sprintf("No films match %q", query)))
	}
	for _, f := range films {
		if err := r.writePlain("%s\n", f.Name); err != nil {
			return err
		}
	}
	return nil
}

// Catalog prints every film known to the service.
func (r *Runner) Catalog(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	films, err := r.engine.Catalog(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(films, true)
	}

	r.writePlainHeader(fmt.Sprintf("Catalog (%d)", len(films)))
	for _, f := range films {
		line := f.Name
		if f.Photo != "" {
			line += " " + ui.Muted(f.Photo)
		}
		if err := r.writePlain("%s %s\n", line, ui.Muted(fmt.Sprintf("[id %d]", f.ID))); err != nil {
			return err
		}
	}
	return nil
}

// CatalogPhoto sets a film's catalog photo; an empty photo clears it.
func (r *Runner) CatalogPhoto(ctx context.Context, cmd *cli.Command) error {
	value, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: %q is not a film ID", shared.ErrInvalidArgument, value)
	}
	if err := r.open(); err != nil {
		return err
	}

	film, err := r.engine.SetFilmPhoto(ctx, id, cmd.StringArg("photo"))
	if err != nil {
		return err
	}

	if film.Photo == "" {
		return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Cleared the catalog photo of %q", film.Name)))
	}
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Set the catalog photo of %q to %s", film.Name, film.Photo)))
}
