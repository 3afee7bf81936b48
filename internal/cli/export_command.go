package cli

import (
	"context"
	"fmt"
	"os"

	"task-manager/internal/errors"
	"task-manager/internal/snapshot"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	format       string
	output       string
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler. An empty output or
// "-" writes to standard output.
func NewExportCommand(app *App, format, output string) *ExportCommand {
	return &ExportCommand{
		app:          app,
		format:       format,
		output:       output,
		errorHandler: NewErrorHandler(),
	}
}

// Execute writes the current snapshot. An optional argument names the
// format when no --format flag was given.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	formatName := c.format
	if formatName == "" && len(args) > 0 {
		formatName = args[0]
	}

	format := snapshot.FormatFromPath(c.output, c.app.defaultFormat())
	if formatName != "" {
		parsed, err := snapshot.ParseFormat(formatName)
		if err != nil {
			return c.errorHandler.Handle("export tasks", errors.NewInvalidInputError("format", formatName, "must be json or yaml"))
		}
		format = parsed
	}

	if c.output == "" || c.output == "-" {
		if err := c.app.service.ExportSnapshot(c.app.out, format); err != nil {
			return c.errorHandler.Handle("export tasks", err)
		}
		return nil
	}

	file, err := os.Create(c.output)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	if err := c.app.service.ExportSnapshot(file, format); err != nil {
		file.Close()
		return c.errorHandler.Handle("export tasks", err)
	}
	if err := file.Close(); err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	fmt.Fprintf(c.app.out, "Exported %d tasks to %s\n", len(c.app.service.ListTasks()), c.output)
	return nil
}
