package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/services"
)

// sessionAnnotation marks commands that restore and persist the task list.
const sessionAnnotation = "tm/session"

// RepositoryOpener opens the state bundle for a loaded configuration.
type RepositoryOpener func(cfg *config.Config) (sqlite.Repository, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	openRepo   RepositoryOpener
	configFile string

	config  *config.Config
	logger  *log.Logger
	repo    sqlite.Repository
	service services.TaskService
	app     *App

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(openRepo RepositoryOpener) *RootCommand {
	root := &RootCommand{
		openRepo: openRepo,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line to-do list",
		Long: `Task Manager (tm) keeps a flat, ordered to-do list.

Each invocation restores the list saved by the previous one, applies the
command and saves the result. Ids are issued from 0 upward and are never
reused, even after a task is removed.

EXAMPLES:
  tm add Buy milk                          # Add a task
  tm list                                  # Show the tasks
  tm done 0                                # Mark task 0 complete
  tm undone 0                              # Mark task 0 not complete
  tm remove 0                              # Remove task 0
  tm export --format yaml -o tasks.yaml    # Save a snapshot
  tm import tasks.yaml                     # Replace the list with a snapshot
  tm shell                                 # Interactive session

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is TOML, read from --config, TM_CONFIG or ./tm.toml.

    TM_DB_DIR                              State directory (default: ~/.tm)
    TM_DB_FILENAME                         State filename (default: tm.db)
    TM_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TM_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
    TM_DB_DIR_PERMISSIONS                  State directory mode (default: 0755)
    TM_SNAPSHOT_FORMAT                     Snapshot format, json or yaml (default: json)
    TM_LOG_LEVEL                           debug, info, warn or error (default: warn)
    TM_LOG_FORMAT                          text, json or logfmt (default: text)
    TM_APP_TIMEOUT                         Command timeout (default: 60s)
    TM_APP_VERBOSE                         Verbose output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[sessionAnnotation] == "" {
				return nil
			}
			return root.startSession(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.persistSession(cmd.Context())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetIO replaces the streams used by every command.
func (r *RootCommand) SetIO(in io.Reader, out, errOut io.Writer) {
	r.in = in
	r.out = out
	r.errOut = errOut
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// SetArgs sets the arguments to parse instead of os.Args.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration loaded for the last session, if any.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Execute runs the root command and closes the state bundle afterwards.
// Failures of the state bundle itself are also logged with their cause.
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.logger != nil && errors.ShouldLogError(err) {
		cause, _ := errors.AsAppError(err)
		r.logger.Error("command failed", "code", errors.GetErrorCode(err), "err", cause)
	}
	if closeErr := r.closeSession(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "TOML config file (overrides TM_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "State directory (overrides TM_DB_DIR)")
	flags.String("db-filename", "", "State filename (overrides TM_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Query timeout (overrides TM_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Write timeout (overrides TM_DB_WRITE_TIMEOUT)")

	// Snapshot configuration
	flags.String("snapshot-format", "", "Default snapshot format (overrides TM_SNAPSHOT_FORMAT)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TM_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Verbose output (overrides TM_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	session := map[string]string{sessionAnnotation: "true"}

	addCmd := &cobra.Command{
		Use:         "add <name...>",
		Short:       "Add a task",
		Long:        "Add a task named after the arguments joined by spaces. Blank names are ignored.",
		Args:        cobra.MinimumNArgs(1),
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewAddCommand(r.app), args)
		},
	}

	var listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in display order.

Formats:
  table - one row per task (default)
  json  - the snapshot as a JSON array
  yaml  - the snapshot as a YAML sequence`,
		Aliases:     []string{"ls"},
		Args:        cobra.NoArgs,
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewListCommand(r.app, listFormat), args)
		},
	}
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format: table, json or yaml")

	doneCmd := &cobra.Command{
		Use:         "done <id>",
		Short:       "Mark a task complete",
		Args:        cobra.ExactArgs(1),
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewToggleCommand(r.app, true), args)
		},
	}

	undoneCmd := &cobra.Command{
		Use:         "undone <id>",
		Short:       "Mark a task not complete",
		Args:        cobra.ExactArgs(1),
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewToggleCommand(r.app, false), args)
		},
	}

	removeCmd := &cobra.Command{
		Use:         "remove <id>",
		Short:       "Remove a task",
		Long:        "Remove a task. Its id is never issued again.",
		Aliases:     []string{"rm", "delete"},
		Args:        cobra.ExactArgs(1),
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewRemoveCommand(r.app), args)
		},
	}

	clearCmd := &cobra.Command{
		Use:         "clear",
		Short:       "Remove every task",
		Args:        cobra.NoArgs,
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewClearCommand(r.app), args)
		},
	}

	var exportFormat, exportOutput string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task snapshot",
		Long: `Write the task snapshot as JSON or YAML.

Without --format the format follows the --output extension, then the
configured snapshot format.

Examples:
  tm export                        # JSON to standard output
  tm export --format yaml          # YAML to standard output
  tm export -o tasks.yaml          # YAML to tasks.yaml`,
		Args:        cobra.NoArgs,
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewExportCommand(r.app, exportFormat, exportOutput), args)
		},
	}
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Snapshot format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: standard output)")

	var importFormat string
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the tasks with a snapshot",
		Long: `Replace the task list with a snapshot file ("-" reads standard input).

The whole snapshot is rejected when records are malformed, ids repeat or a
name is blank; the saved list is then left untouched.`,
		Args:        cobra.ExactArgs(1),
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runHandler(cmd, NewImportCommand(r.app, importFormat), args)
		},
	}
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Snapshot format: json or yaml (default: from extension)")

	shellCmd := &cobra.Command{
		Use:         "shell",
		Short:       "Start an interactive session",
		Long:        "Start an interactive session. Type a task name to add it, or /help for commands.",
		Args:        cobra.NoArgs,
		Annotations: session,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive sessions are not bounded by the command timeout.
			return NewShellCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		doneCmd,
		undoneCmd,
		removeCmd,
		clearCmd,
		exportCmd,
		importCmd,
		shellCmd,
	)
}

// runHandler runs handler bounded by the configured application timeout.
func (r *RootCommand) runHandler(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return handler.Execute(ctx, args)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getOverridesFromFlags collects the global flags that were set explicitly.
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}
	if flags.Changed("snapshot-format") {
		v, _ := flags.GetString("snapshot-format")
		overrides.SnapshotFormat = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// startSession loads configuration, opens the state bundle and restores the
// task list.
func (r *RootCommand) startSession(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if r.configFile != "" {
		loader = loader.WithConfigFile(r.configFile)
	}
	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	opts := logging.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	r.logger = logging.New(r.errOut, opts)
	if cfg.Application.Verbose && r.logger.GetLevel() > log.InfoLevel {
		r.logger.SetLevel(log.InfoLevel)
	}

	repo, err := r.openRepo(cfg)
	if err != nil {
		return fmt.Errorf("failed to open task state: %w", err)
	}
	r.repo = repo

	r.service = services.NewTaskService(repo, r.logger)
	r.app = NewApp(r.service, cfg).WithIO(r.in, r.out, r.errOut)

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	if err := r.service.Restore(ctx); err != nil {
		return NewErrorHandler().Handle("restore tasks", err)
	}
	return nil
}

// persistSession saves the task list if the command changed it.
func (r *RootCommand) persistSession(parent context.Context) error {
	if r.service == nil {
		return nil
	}

	if !r.service.Dirty() {
		r.logger.Debug("no changes to save")
		return nil
	}

	// An interrupt that ended the command must not also abort the save.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), r.getAppTimeout())
	defer cancel()
	if err := r.service.Persist(ctx); err != nil {
		return NewErrorHandler().Handle("save tasks", err)
	}
	return nil
}

func (r *RootCommand) closeSession() error {
	if r.repo == nil {
		return nil
	}
	err := r.repo.Close()
	r.repo = nil
	r.service = nil
	r.app = nil
	return err
}
