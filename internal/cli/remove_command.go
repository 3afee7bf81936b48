package cli

import (
	"context"
	"fmt"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute removes the task whose id is the only argument.
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if err := requireOneArg(args, "id"); err != nil {
		return c.errorHandler.Handle("remove task", err)
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle("remove task", err)
	}

	task, err := c.app.service.RemoveTask(id)
	if err != nil {
		return c.errorHandler.Handle("remove task", err)
	}

	fmt.Fprintf(c.app.out, "Removed task %d: %s\n", task.ID, task.Name)
	return nil
}
