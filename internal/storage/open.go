package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// Open picks a backend from the config value:
// postgres:// or postgresql:// URLs, diskv:<dir>, *.json files, and
// SQLite for anything else.
func Open(config string) (Provider, error) {
	switch {
	case IsPostgresConnString(config):
		if err := ValidateConnString(config); err != nil {
			return nil, err
		}
		return NewPostgresStore(config), nil
	case strings.HasPrefix(config, DiskvPrefix):
		dir, err := ExpandPath(strings.TrimPrefix(config, DiskvPrefix))
		if err != nil {
			return nil, err
		}
		if dir == "" {
			return nil, fmt.Errorf("diskv store needs a directory, e.g. %s~/.config/questlog/slots", DiskvPrefix)
		}
		return NewDiskvStore(dir), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// ConfigDir returns the local directory used for logs, locks and backups.
// Remote stores fall back to fallback.
func ConfigDir(p Provider, fallback string) string {
	switch s := p.(type) {
	case *DiskvStore:
		return s.basePath
	case *PostgresStore:
		return fallback
	default:
		return filepath.Dir(p.GetConfigPath())
	}
}
