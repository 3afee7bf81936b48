package cli

import (
	"context"
	"sort"
	"strings"

	"task-manager/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
	aliases  map[string]string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}

	// Register all commands
	registry.Register("add", NewAddCommand(app))
	registry.Register("list", NewListCommand(app, ""))
	registry.Register("done", NewToggleCommand(app, true))
	registry.Register("undone", NewToggleCommand(app, false))
	registry.Register("remove", NewRemoveCommand(app), "rm", "delete")
	registry.Register("clear", NewClearCommand(app))
	registry.Register("export", NewExportCommand(app, "", ""))
	registry.Register("import", NewImportCommand(app, ""))

	return registry
}

// Register adds a command to the registry under name and any aliases.
func (r *CommandRegistry) Register(name string, command Command, aliases ...string) {
	r.commands[name] = command
	for _, alias := range aliases {
		r.aliases[alias] = name
	}
}

// Lookup returns the command registered under name or one of its aliases.
func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	name = strings.ToLower(name)
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	command, exists := r.commands[name]
	return command, exists
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.Lookup(commandName)
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in sorted order.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: tm add <name> | list [table|json|yaml] | done <id> | undone <id> | remove <id> | clear | export [json|yaml] | import <file> | shell"
}
