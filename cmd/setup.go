package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/ui"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabaseWithTimeout(config.Database.Path, config.Database.BusyTimeout)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.config = config
	r.configPath = configPath
	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	r.writePlain("%s\n", ui.Success("✓ Database ready: "+config.Database.Path))
	if config.Auth.JWTSecret == "" || config.Auth.JWTSecret == "change-me" {
		r.writePlain("%s\n", ui.Warn("Set auth.jwt_secret in "+configPath+" before running 'films serve'"))
	}
	return nil
}

// MigrationStatus prints every known migration and whether it has been applied.
func (r *Runner) MigrationStatus(ctx context.Context, cmd *cli.Command) error {
	return r.withDatabase(func(db *sql.DB) error {
		statuses, err := shared.Migrations(db)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(statuses, true)
		}

		r.writePlainHeader("Migrations")
		for _, s := range statuses {
			state := ui.Warn("pending")
			if s.Applied {
				state = ui.Success("applied")
			}
			r.writePlain("%04d %-32s %s\n", s.Version, s.Name, state)
		}
		return nil
	})
}

// MigrationRollback rolls back the most recently applied migration.
func (r *Runner) MigrationRollback(ctx context.Context, cmd *cli.Command) error {
	return r.withDatabase(func(db *sql.DB) error {
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		r.logger.Info("rolled back migration", "path", r.config.Database.Path)
		return r.writePlain("%s\n", ui.Success("✓ Rolled back the latest migration"))
	})
}

// withDatabase runs fn against the database without applying pending migrations.
func (r *Runner) withDatabase(fn func(db *sql.DB) error) error {
	if r.db != nil {
		return fn(r.db)
	}

	db, err := shared.NewDatabaseWithTimeout(r.config.Database.Path, r.config.Database.BusyTimeout)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
