package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"task-manager/internal/errors"
	"task-manager/internal/snapshot"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app          *App
	format       string
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler. An empty format is
// guessed from the file extension.
func NewImportCommand(app *App, format string) *ImportCommand {
	return &ImportCommand{
		app:          app,
		format:       format,
		errorHandler: NewErrorHandler(),
	}
}

// Execute replaces the task list with the snapshot in the named file, or
// standard input for "-". A rejected snapshot leaves the list unchanged.
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if err := requireOneArg(args, "file"); err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}
	path := args[0]

	format := snapshot.FormatFromPath(path, c.app.defaultFormat())
	if c.format != "" {
		parsed, err := snapshot.ParseFormat(c.format)
		if err != nil {
			return c.errorHandler.Handle("import tasks", errors.NewInvalidInputError("format", c.format, "must be json or yaml"))
		}
		format = parsed
	}

	var r io.Reader = c.app.in
	source := "stdin"
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return c.errorHandler.Handle("import tasks", errors.NewSnapshotError(path, err))
		}
		defer file.Close()
		r = file
		source = path
	}

	count, err := c.app.service.ImportSnapshot(r, format, source)
	if err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}

	fmt.Fprintf(c.app.out, "Imported %d tasks from %s\n", count, source)
	return nil
}
