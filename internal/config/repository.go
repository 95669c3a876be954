package config

import (
	"fmt"
	"os"

	"taskflow/internal/repository/sqlite"
)

// CreateRepository opens the durable session store described by the configuration,
// creating its directory when needed
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Session.Dir, os.FileMode(config.Session.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	repo, err := sqlite.New(config.GetSessionPath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory session store for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test session store: %w", err)
	}

	return repo, nil
}
