package main

import (
	"fmt"
	"os"

	"task-manager/internal/config"
	"task-manager/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository opens the state bundle for cfg in the factory's
// environment.
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository(cfg)
	case Testing:
		return rf.createTestingRepository(cfg)
	default:
		return rf.createProductionRepository(cfg)
	}
}

// createDevelopmentRepository uses a bundle in the working directory.
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithConfig(cfg.Database.Filename, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory bundle that disappears with the
// process.
func (rf *RepositoryFactory) createTestingRepository(cfg *config.Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithConfig(":memory:", cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// createProductionRepository uses the configured directory and filename.
func (rf *RepositoryFactory) createProductionRepository(cfg *config.Config) (sqlite.Repository, error) {
	if err := cfg.EnsureDatabaseDir(); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	repo, err := sqlite.NewWithConfig(cfg.GetDatabasePath(), cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize production database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment from TM_ENV
func getEnvironment() Environment {
	switch os.Getenv("TM_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
