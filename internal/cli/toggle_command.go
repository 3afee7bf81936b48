package cli

import (
	"context"
	"fmt"
)

// ToggleCommand handles the done and undone commands
type ToggleCommand struct {
	app          *App
	complete     bool
	errorHandler *ErrorHandler
}

// NewToggleCommand creates a handler that marks tasks complete or, with
// complete false, not complete.
func NewToggleCommand(app *App, complete bool) *ToggleCommand {
	return &ToggleCommand{
		app:          app,
		complete:     complete,
		errorHandler: NewErrorHandler(),
	}
}

// Execute sets the completion flag of the task whose id is the only argument.
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	operation := "complete task"
	if !c.complete {
		operation = "reopen task"
	}

	if err := requireOneArg(args, "id"); err != nil {
		return c.errorHandler.Handle(operation, err)
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return c.errorHandler.Handle(operation, err)
	}

	task, err := c.app.service.ToggleTask(id, c.complete)
	if err != nil {
		return c.errorHandler.Handle(operation, err)
	}

	if c.complete {
		fmt.Fprintf(c.app.out, "Completed task %d: %s\n", task.ID, task.Name)
	} else {
		fmt.Fprintf(c.app.out, "Reopened task %d: %s\n", task.ID, task.Name)
	}
	return nil
}
