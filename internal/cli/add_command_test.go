package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

func TestAddCommand_Execute(t *testing.T) {
	app := setupTestApp(t)
	cmd := NewAddCommand(app.App)
	ctx := context.Background()

	require.NoError(t, cmd.Execute(ctx, []string{"Buy", "milk"}))
	require.NoError(t, cmd.Execute(ctx, []string{"  Walk dog  "}))

	assert.Equal(t, "Added task 0: Buy milk\nAdded task 1: Walk dog\n", app.stdout.String())
	assert.Equal(t, []domain.Task{
		{ID: 0, Name: "Buy milk"},
		{ID: 1, Name: "Walk dog"},
	}, app.service.ListTasks())
}

func TestAddCommand_BlankName(t *testing.T) {
	app := setupTestApp(t)
	cmd := NewAddCommand(app.App)

	require.NoError(t, cmd.Execute(context.Background(), []string{"   "}))
	require.NoError(t, cmd.Execute(context.Background(), nil))

	assert.Equal(t, "Nothing added: task name is blank\nNothing added: task name is blank\n", app.stdout.String())
	assert.Empty(t, app.service.ListTasks())
	assert.False(t, app.service.Dirty())
}

// exhaustedService has issued every id it can.
type exhaustedService struct {
	services.TaskService
}

func (exhaustedService) AddTask(string) (domain.Task, bool) {
	return domain.Task{}, false
}

func TestAddCommand_NoIDsLeft(t *testing.T) {
	app := setupTestApp(t)
	exhausted := NewApp(exhaustedService{app.service}, nil).WithIO(app.in, app.stdout, app.stderr)

	require.NoError(t, NewAddCommand(exhausted).Execute(context.Background(), []string{"Buy", "milk"}))
	require.NoError(t, NewAddCommand(exhausted).Execute(context.Background(), []string{" "}))

	assert.Equal(t, "Nothing added: no task ids left\nNothing added: task name is blank\n", app.stdout.String())
}
