package cli

import (
	"context"
	"fmt"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute joins the arguments into a task name and adds it. A blank name,
// or a list that has used up every id, changes nothing and prints a notice
// instead of failing.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")

	task, ok := c.app.service.AddTask(name)
	if !ok {
		if strings.TrimSpace(name) == "" {
			fmt.Fprintln(c.app.out, "Nothing added: task name is blank")
		} else {
			fmt.Fprintln(c.app.out, "Nothing added: no task ids left")
		}
		return nil
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", task.ID, task.Name)
	return nil
}
