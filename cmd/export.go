package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/films/internal/formatter"
	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/tasks"
	"github.com/desertthunder/films/internal/ui"
	"github.com/urfave/cli/v3"
)

// Export writes one user's list, or every list with --all, in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if err := formatter.ValidateFormat(format); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd, format)
	}

	userID, username, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	export, err := r.exporter.Snapshot(ctx, tasks.Owner{ID: userID, Username: username})
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "-" {
		return formatter.Write(r.output, export, format)
	}

	path, err := formatter.WriteFile(export, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported list", "owner", username, "films", len(export.Entries), "path", path)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Exported %d films (%d with photos) to %s", len(export.Entries), export.Photos(), path)))
}

func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command, format string) error {
	if err := r.open(); err != nil {
		return err
	}

	users, err := r.accounts.List(ctx)
	if err != nil {
		return err
	}

	owners := make([]tasks.Owner, len(users))
	for i, u := range users {
		owners[i] = tasks.Owner{ID: u.ID(), Username: u.Username()}
	}

	progress := make(chan tasks.ProgressUpdate, len(owners)*2+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.exporter.BulkExport(ctx, progress, owners, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Exported %d of %d lists", result.SuccessfulExports, result.TotalLists))
	for _, res := range result.Results {
		if res.Success {
			r.writePlain("%s %s\n", ui.Success("✓"), res.File)
		} else {
			r.writePlain("%s %s: %v\n", ui.Error("✗"), res.Owner, res.Error)
		}
	}
	return r.writePlainln("Manifest: %s", result.ManifestPath)
}
