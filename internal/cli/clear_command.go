package cli

import (
	"context"
	"fmt"
)

// ClearCommand handles the clear command
type ClearCommand struct {
	app *App
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{app: app}
}

// Execute removes every task. Ids of cleared tasks are not reused.
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	removed := c.app.service.ClearTasks()
	fmt.Fprintf(c.app.out, "Removed %d tasks\n", removed)
	return nil
}
