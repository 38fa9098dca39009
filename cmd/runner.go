package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/films/internal/accounts"
	"github.com/desertthunder/films/internal/lists"
	"github.com/desertthunder/films/internal/shared"
	"github.com/desertthunder/films/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and the services built on it are opened on first use so commands
// like "setup database" can run before a database exists.
type Runner struct {
	config     *shared.Config
	configPath string
	params     accounts.Params
	logger     *log.Logger
	output     io.Writer

	db       *sql.DB
	ownsDB   bool
	engine   *lists.Engine
	accounts *accounts.Service
	exporter *tasks.Exporter
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer

	// DB replaces the configured database. The Runner does not close it.
	DB *sql.DB

	// PasswordParams overrides [accounts.DefaultParams].
	PasswordParams *accounts.Params
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	params := accounts.DefaultParams
	if opts.PasswordParams != nil {
		params = *opts.PasswordParams
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		params:     params,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, userCommand, listCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// open connects to the database and builds the services on first use.
func (r *Runner) open() error {
	if r.engine != nil {
		return nil
	}

	if r.db == nil {
		r.logger.Debug("opening database", "path", r.config.Database.Path)
		db, err := shared.OpenConfigured(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		r.db = db
		r.ownsDB = true
	}

	svc, err := accounts.NewService(r.db, r.params, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create account service: %w", err)
	}

	r.accounts = svc
	r.engine = lists.NewEngine(r.db, r.logger)
	r.exporter = tasks.NewExporter(r.engine, r.logger)
	return nil
}

// Close releases the database when the Runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.engine = nil
	return err
}

// SetLogger replaces the logger used by commands and by services built afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// userID resolves the --user flag of cmd to a user ID.
func (r *Runner) userID(ctx context.Context, cmd *cli.Command) (string, string, error) {
	username := cmd.String("user")
	if username == "" {
		return "", "", fmt.Errorf("%w: --user is required", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return "", "", err
	}

	user, err := r.accounts.Lookup(ctx, username)
	if err != nil {
		return "", "", err
	}
	return user.ID(), user.Username(), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
