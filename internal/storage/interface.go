package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/questlog/internal/migration"
)

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNotLoaded is returned when an operation runs before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value store. Each ledger owns one key and reads or
// writes its whole snapshot at once.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by stores that track a migrated schema
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}

func schemaVersion(runner *migration.Runner) (int, int, error) {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
