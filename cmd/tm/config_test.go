package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/repository/sqlite"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TM_ENV", tt.value)
			assert.Equal(t, tt.want, getEnvironment())
		})
	}
}

func TestRepositoryFactory_Production(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "nested", "state")
	cfg.Database.Filename = "bundle.db"

	repo, err := NewRepositoryFactory(Production).CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.SaveSnapshot(context.Background(), &sqlite.Snapshot{
		Tasks:  []*sqlite.Task{{Position: 0, ID: 0, Name: "Buy milk"}},
		NextID: 1,
	}))

	_, err = os.Stat(filepath.Join(cfg.Database.Dir, "bundle.db"))
	assert.NoError(t, err)
}

func TestRepositoryFactory_Development(t *testing.T) {
	chdirForTest(t, t.TempDir())
	cfg := config.NewConfig()
	cfg.Database.Filename = "dev.db"

	repo, err := NewRepositoryFactory(Development).CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat("dev.db")
	assert.NoError(t, err)
}

func TestRepositoryFactory_Testing(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "unused")

	repo, err := NewRepositoryFactory(Testing).CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)

	_, err = os.Stat(cfg.Database.Dir)
	assert.True(t, os.IsNotExist(err))
}
