package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive list editor for --user.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/films-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	userID, username, err := r.userID(ctx, cmd)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.engine, userID, username)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
