package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/snapshot"
)

const formatTable = "table"

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	format string
}

// NewListCommand creates a new list command handler. An empty format means
// table unless an argument names another one.
func NewListCommand(app *App, format string) *ListCommand {
	return &ListCommand{app: app, format: format}
}

// Execute renders the task list as a table, JSON or YAML.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	format := c.format
	if len(args) > 0 {
		format = args[0]
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = formatTable
	}

	tasks := c.app.service.ListTasks()

	if format == formatTable {
		return printTaskTable(c.app.out, tasks, c.app.config.Application.Verbose)
	}

	snapshotFormat, err := snapshot.ParseFormat(format)
	if err != nil {
		return errors.NewInvalidInputError("format", format, "must be one of table, json, yaml")
	}
	return c.app.service.ExportSnapshot(c.app.out, snapshotFormat)
}

// printTaskTable writes one row per task, or a notice when there are none.
func printTaskTable(w io.Writer, tasks []domain.Task, verbose bool) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return nil
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tNAME")
	completed := 0
	for _, task := range tasks {
		done := "[ ]"
		if task.Complete {
			done = "[x]"
			completed++
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", task.ID, done, task.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(w, "%d tasks, %d complete\n", len(tasks), completed)
	}
	return nil
}
