// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/films/internal/formatter"
	"github.com/urfave/cli/v3"
)

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Username whose list to use",
		Sources: cli.EnvVars("FILMS_USER"),
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Account password",
		Sources: cli.EnvVars("FILMS_PASSWORD"),
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config.toml if missing, initialize the database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "migrations",
				Usage: "Show applied and pending migrations",
				Flags: []cli.Flag{
					jsonFlag(),
				},
				Action: r.MigrationStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recently applied migration",
				Action: r.MigrationRollback,
			},
		},
	}
}

// serveCommand starts the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the film list API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// userCommand handles account management.
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"users"},
		Usage:   "Manage accounts",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags:  []cli.Flag{passwordFlag()},
				Action: r.UserRegister,
			},
			{
				Name:  "check",
				Usage: "Check whether a username is available",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.UserCheck,
			},
			{
				Name:  "passwd",
				Usage: "Change an account's password",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Flags:  []cli.Flag{passwordFlag()},
				Action: r.UserPasswd,
			},
			{
				Name:  "delete",
				Usage: "Delete an account and its list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.UserDelete,
			},
			{
				Name:   "list",
				Usage:  "List accounts",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.UserList,
			},
		},
	}
}

// listCommand handles a user's film list.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"films"},
		Usage:   "View and edit a film list",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the list in order",
				Flags: []cli.Flag{
					userFlag(),
					jsonFlag(),
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of entries (0 for all)"},
					&cli.IntFlag{Name: "offset", Usage: "Entries to skip"},
				},
				Action: r.ListShow,
			},
			{
				Name:  "add",
				Usage: "Add a film to the end of the list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  []cli.Flag{userFlag(), jsonFlag()},
				Action: r.ListAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove an entry by ID and renumber the list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{userFlag()},
				Action: r.ListRemove,
			},
			{
				Name:      "sort",
				Usage:     "Reorder the list; pass every entry ID, top to bottom",
				ArgsUsage: "ID [ID...]",
				Flags:     []cli.Flag{userFlag(), jsonFlag()},
				Action:    r.ListSort,
			},
			{
				Name:   "reorder",
				Usage:  "Renumber the list to 1..N without changing its order",
				Flags:  []cli.Flag{userFlag()},
				Action: r.ListReorder,
			},
			{
				Name:  "photo",
				Usage: "Set or clear the photo reference of an entry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "photo"},
				},
				Flags:  []cli.Flag{userFlag()},
				Action: r.ListPhoto,
			},
			{
				Name:  "search",
				Usage: "Search the catalog for films not in the list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  []cli.Flag{userFlag(), jsonFlag()},
				Action: r.ListSearch,
			},
			{
				Name:   "catalog",
				Usage:  "Print every film in the shared catalog",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.Catalog,
				Commands: []*cli.Command{
					{
						Name:  "photo",
						Usage: "Set or clear the catalog photo of a film, shown on entries without their own",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
							&cli.StringArg{Name: "photo"},
						},
						Action: r.CatalogPhoto,
					},
				},
			},
		},
	}
}

// exportCommand writes lists to files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a list (or every list with --all) to a file",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown, txt or json",
				Value:   formatter.FormatJSON,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (or directory with --all); \"-\" writes to stdout",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every user's list with a manifest",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers for --all",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive list editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive list editor",
		Flags:   []cli.Flag{userFlag()},
		Action:  r.TUI,
	}
}
