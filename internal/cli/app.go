package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/services"
	"task-manager/internal/snapshot"
)

// App represents the main CLI application
type App struct {
	service  services.TaskService
	config   *config.Config
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application bound to stdin, stdout and stderr.
func NewApp(service services.TaskService, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		service: service,
		config:  cfg,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithIO replaces the streams the application reads from and writes to.
func (a *App) WithIO(in io.Reader, out, errOut io.Writer) *App {
	a.in = in
	a.out = out
	a.errOut = errOut
	return a
}

// Run executes the named command with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// defaultFormat returns the configured snapshot format.
func (a *App) defaultFormat() snapshot.Format {
	format, err := snapshot.ParseFormat(a.config.Snapshot.Format)
	if err != nil {
		return snapshot.FormatJSON
	}
	return format
}

// parseTaskID parses a task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 0 {
		return 0, errors.NewInvalidInputError("id", arg, "task id must be a non-negative integer")
	}
	return id, nil
}

// requireOneArg checks that exactly one argument was given.
func requireOneArg(args []string, name string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError(name, strings.Join(args, " "), fmt.Sprintf("expected exactly one %s", name))
	}
	return nil
}
