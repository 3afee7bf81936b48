package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/errors"
)

func TestNewCommandRegistry(t *testing.T) {
	app := setupTestApp(t)

	registry := NewCommandRegistry(app.App)

	assert.Equal(t, []string{"add", "clear", "done", "export", "import", "list", "remove", "undone"}, registry.Names())
}

func TestCommandRegistry_Lookup(t *testing.T) {
	app := setupTestApp(t)
	registry := NewCommandRegistry(app.App)

	remove, ok := registry.Lookup("remove")
	require.True(t, ok)

	for _, alias := range []string{"rm", "delete", "RM"} {
		cmd, ok := registry.Lookup(alias)
		require.True(t, ok, alias)
		assert.Same(t, remove, cmd)
	}

	_, ok = registry.Lookup("start")
	assert.False(t, ok)
}

func TestCommandRegistry_Execute(t *testing.T) {
	app := setupTestApp(t)
	registry := NewCommandRegistry(app.App)
	ctx := context.Background()

	t.Run("executes add command", func(t *testing.T) {
		require.NoError(t, registry.Execute(ctx, "add", []string{"Test", "Task"}))
		assert.Equal(t, "Test Task", app.service.ListTasks()[0].Name)
	})

	t.Run("executes done command", func(t *testing.T) {
		require.NoError(t, registry.Execute(ctx, "done", []string{"0"}))
		assert.True(t, app.service.ListTasks()[0].Complete)
	})

	t.Run("executes delete alias", func(t *testing.T) {
		require.NoError(t, registry.Execute(ctx, "delete", []string{"0"}))
		assert.Empty(t, app.service.ListTasks())
	})

	t.Run("unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "resume", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

type recordingCommand struct {
	args []string
}

func (c *recordingCommand) Execute(ctx context.Context, args []string) error {
	c.args = args
	return nil
}

func TestCommandRegistry_Register(t *testing.T) {
	registry := &CommandRegistry{commands: map[string]Command{}, aliases: map[string]string{}}
	cmd := &recordingCommand{}

	registry.Register("echo", cmd, "e")
	require.NoError(t, registry.Execute(context.Background(), "e", []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, cmd.args)
}
