package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/config"
	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/fetcher"
	"github.com/balkashynov/hwk/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	configPath string
	dbPath     string
	verbose    bool
)

// app holds what every command shares; set up before each run
var app struct {
	cfg   *config.Config
	log   *logging.Logger
	store *db.Store
}

// now is the clock every command resolves dates against
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "hwk",
	Short: "A homework tracker that finds assignments in your text",
	Long: `hwk finds homework assignments in pasted text or web pages, keeps them
in a local task list and suggests priorities and deadlines.

Paste an announcement, review what was found, and keep track of it all from
the terminal.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup loads config and creates the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.log = log
	app.log.Debug("command starting", zap.String("command", cmd.CommandPath()))
	return nil
}

// cleanup closes the store and flushes logs
func cleanup() {
	if app.store != nil {
		if err := app.store.Close(); err != nil && app.log != nil {
			app.log.Warn("failed to close database", zap.Error(err))
		}
		app.store = nil
	}
	if app.log != nil {
		_ = app.log.Sync()
	}
}

// openStore opens the database on first use
func openStore() (*db.Store, error) {
	if app.store != nil {
		return app.store, nil
	}
	store, err := db.Open(app.cfg.DB.Path, app.log)
	if err != nil {
		return nil, err
	}
	app.store = store
	return store, nil
}

// withStore wraps a command function to open the database first
func withStore(fn func(cmd *cobra.Command, args []string, store *db.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return fn(cmd, args, store)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command and prints any error
func Execute() error {
	defer cleanup()

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// printError writes the error and, for fetch failures, what to try instead
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var fetchErr *fetcher.Error
	if errors.As(err, &fetchErr) {
		fmt.Fprintf(w, "Suggestion: %s\n", fetcher.Suggestion(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.hwk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (default ~/.hwk/hwk.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
