package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/ui"
	"github.com/urfave/cli/v3"
)

type userRow struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	value := cmd.StringArg(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return value, nil
}

// UserRegister creates an account.
func (r *Runner) UserRegister(ctx context.Context, cmd *cli.Command) error {
	username, err := requireArg(cmd, "username")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	user, err := r.accounts.Register(ctx, username, cmd.String("password"))
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", username, err)
	}

	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Registered %s (%s)", user.Username(), user.ID())))
}

// UserCheck reports whether a username is free.
func (r *Runner) UserCheck(ctx context.Context, cmd *cli.Command) error {
	username, err := requireArg(cmd, "username")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	available, err := r.accounts.Available(ctx, username)
	if err != nil {
		return err
	}

	if available {
		return r.writePlain("%s\n", ui.Success("This username is available."))
	}
	return r.writePlain("%s\n", ui.Warn("This username already exists."))
}

// UserPasswd replaces an account's password.
func (r *Runner) UserPasswd(ctx context.Context, cmd *cli.Command) error {
	username, err := requireArg(cmd, "username")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	if err := r.accounts.ChangePassword(ctx, username, cmd.String("password")); err != nil {
		return fmt.Errorf("failed to change password of %s: %w", username, err)
	}

	return r.writePlain("%s\n", ui.Success("✓ Password updated for "+username))
}

// UserDelete removes an account and its list.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	username, err := requireArg(cmd, "username")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	if err := r.accounts.Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to delete %s: %w", username, err)
	}

	return r.writePlain("%s\n", ui.Success("✓ Deleted "+username))
}

// UserList prints every account.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	users, err := r.accounts.List(ctx)
	if err != nil {
		return err
	}

	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = userRow{ID: u.ID(), Username: u.Username(), CreatedAt: u.CreatedAt()}
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, true)
	}

	r.writePlainHeader(fmt.Sprintf("Users (%d)", len(rows)))
	for _, row := range rows {
		r.writePlain("%-24s %s\n", row.Username, ui.Muted(row.CreatedAt.Format(time.DateOnly)))
	}
	return nil
}
