package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/cli/events"
	"github.com/MolchanovArt/exocortex/internal/cli/items"
	"github.com/MolchanovArt/exocortex/internal/cli/plans"
	"github.com/MolchanovArt/exocortex/internal/cli/system"
	"github.com/MolchanovArt/exocortex/internal/config"
	"github.com/MolchanovArt/exocortex/internal/keyring"
	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/storage"
	"github.com/MolchanovArt/exocortex/internal/storage/postgres"
	"github.com/MolchanovArt/exocortex/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Db      string `help:"Database path or PostgreSQL connection string. Credentials must NOT be embedded; use the keyring or EXOCORTEX_DB_CONNECTION instead."`
	Profile string `help:"Path to the user profile file (JSON or YAML)."`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Initialize exocortex storage."`
	Validate system.ValidateCmd `cmd:"" help:"Check the user profile for problems."`
	Suggest  plans.SuggestCmd   `cmd:"" help:"Suggest free time slots."`
	Plan     plans.PlanCmd      `cmd:"" help:"Assign a task to a suggested slot."`
	Review   plans.ReviewCmd    `cmd:"" help:"Triage new items."`
	Item     struct {
		Add    items.ItemAddCmd    `cmd:"" help:"Capture a new item."`
		List   items.ItemListCmd   `cmd:"" help:"List items."`
		Done   items.ItemDoneCmd   `cmd:"" help:"Mark an item done."`
		Delete items.ItemDeleteCmd `cmd:"" help:"Delete an item."`
	} `cmd:"" help:"Manage action-list items."`
	Event struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a calendar event."`
		Import events.EventImportCmd `cmd:"" help:"Import events from a JSON file."`
		List   events.EventListCmd   `cmd:"" help:"List upcoming events."`
		Delete events.EventDeleteCmd `cmd:"" help:"Delete an event."`
	} `cmd:"" help:"Manage calendar events."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage stored database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("exocortex"),
		kong.Description("Personal capture, triage and time-slot suggestion companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg := config.Load()
	if CLI.Profile != "" {
		cfg.ProfilePath = CLI.Profile
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.DefaultConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// Every command except init expects the store to exist already
	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// needsStore reports whether a command touches the database at all.
func needsStore(command string) bool {
	for _, prefix := range []string{"init", "validate", "keyring"} {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

// openStore picks the storage backend from the --db flag, the environment,
// or the OS keyring, in that order. postgres:// selects PostgreSQL, a .json
// path the flat-file store, anything else SQLite.
func openStore(cfg config.Config) (storage.Provider, error) {
	target := CLI.Db
	if target == "" {
		target = cfg.DBConnection
	}
	if target == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			target = connStr
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("OS keyring unavailable", "error", err)
		}
	}
	if target == "" {
		target = cfg.DBPath
	}

	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		if _, err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; store the full string with 'exocortex keyring set' or use .pgpass")
			}
			return nil, err
		}
		return postgres.New(target), nil
	}
	if strings.HasSuffix(target, ".json") {
		return storage.NewJSONStore(target), nil
	}
	return sqlite.NewStore(target), nil
}
