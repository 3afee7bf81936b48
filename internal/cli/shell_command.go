package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"task-manager/internal/store"
)

// ShellCommand runs an interactive session on a single screen: plain lines
// add tasks, slash commands run the other commands, and the list is drawn
// again whenever it changes.
type ShellCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShellCommand creates a new shell command handler
func NewShellCommand(app *App) *ShellCommand {
	return &ShellCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute reads lines until end of input, /quit or cancellation of ctx.
// Cancellation ends the session like /quit, so the changes made so far are
// still saved.
func (c *ShellCommand) Execute(ctx context.Context, args []string) error {
	out := c.app.out
	stop := make(chan struct{})
	defer close(stop)
	lines, readErr := readLines(c.app.in, stop)

	fmt.Fprintln(out, "Type a task name to add it, or /help for commands.")
	c.render()

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return nil
		}

		fmt.Fprint(out, "> ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return <-readErr
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if c.handleLine(ctx, input) {
			return nil
		}
	}
}

// readLines scans r on its own goroutine so a blocked read does not hold up
// cancellation. lines is closed at end of input, after the scanner error has
// been sent on the returned error channel. Closing stop releases the
// goroutine once the caller stops receiving.
func readLines(r io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

// handleLine runs one line of input and reports whether the shell should
// stop.
func (c *ShellCommand) handleLine(ctx context.Context, input string) bool {
	before := c.app.service.ListTasks()
	changed := false
	unsubscribe := c.app.service.Subscribe(func(store.Change) {
		changed = true
	})
	defer func() {
		unsubscribe()
		// Imports swap the store without emitting changes.
		if changed || !slices.Equal(before, c.app.service.ListTasks()) {
			c.render()
		}
	}()

	if !strings.HasPrefix(input, "/") {
		c.app.Run(ctx, []string{"add", input})
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(fields[0])

	switch name {
	case "quit", "exit":
		fmt.Fprintln(c.app.out, "Goodbye!")
		return true
	case "help":
		c.printHelp()
		return false
	case "list":
		if len(fields) == 1 {
			c.render()
			return false
		}
	}

	if _, ok := c.app.registry.Lookup(name); !ok {
		fmt.Fprintf(c.app.out, "Unknown command: /%s. Type /help for available commands.\n", name)
		return false
	}
	if err := c.app.Run(ctx, fields); err != nil {
		fmt.Fprintf(c.app.out, "Error: %v\n", c.errorHandler.HandleSimple(err))
	}
	return false
}

func (c *ShellCommand) render() {
	printTaskTable(c.app.out, c.app.service.ListTasks(), c.app.config.Application.Verbose)
}

// shellUsage gives the slash syntax and summary of each registry command.
var shellUsage = map[string][2]string{
	"add":    {"/add <name>", "Add a task"},
	"clear":  {"/clear", "Remove every task"},
	"done":   {"/done <id>", "Mark a task complete"},
	"export": {"/export [json|yaml]", "Print the snapshot"},
	"import": {"/import <file>", "Replace the tasks with a snapshot file"},
	"list":   {"/list [json|yaml]", "Show the tasks"},
	"remove": {"/remove <id>", "Remove a task (also /rm, /delete)"},
	"undone": {"/undone <id>", "Mark a task not complete"},
}

func (c *ShellCommand) printHelp() {
	fmt.Fprintln(c.app.out, "Available commands:")
	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  <name>\tAdd a task")
	for _, name := range c.app.registry.Names() {
		usage, ok := shellUsage[name]
		if !ok {
			usage = [2]string{"/" + name, ""}
		}
		fmt.Fprintf(w, "  %s\t%s\n", usage[0], usage[1])
	}
	fmt.Fprintln(w, "  /help\tShow this help message")
	fmt.Fprintln(w, "  /quit\tLeave the shell")
	w.Flush()
}
