package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestHasDSNParam(t *testing.T) {
	tests := []struct {
		name     string
		connStr  string
		key      string
		expected bool
	}{
		{"empty string", "", "search_path", false},
		{"no search_path", "host=localhost port=5432 dbname=questlog user=postgres", "search_path", false},
		{"lowercase", "host=localhost search_path=questlog", "search_path", true},
		{"uppercase", "host=localhost SEARCH_PATH=questlog", "search_path", true},
		{"value is not a key", "host=localhost application_name=search_path", "search_path", false},
		{"substring of key", "host=localhost dbname=questlog_search_path", "search_path", false},
		{"sslmode", "host=localhost sslmode=disable", "sslmode", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasDSNParam(tt.connStr, tt.key); got != tt.expected {
				t.Errorf("hasDSNParam(%q, %q) = %v, want %v", tt.connStr, tt.key, got, tt.expected)
			}
		})
	}
}

func TestWithSearchPath(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		want    string
	}{
		{"url without search_path", "postgres://user@localhost/db", "search_path=questlog"},
		{"url keeps existing", "postgres://user@localhost/db?search_path=custom", "search_path=custom"},
		{"dsn without search_path", "host=localhost dbname=db", "search_path=questlog"},
		{"dsn keeps existing", "host=localhost search_path=custom", "search_path=custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withSearchPath(tt.connStr)
			if !strings.Contains(got, tt.want) {
				t.Errorf("withSearchPath(%q) = %q, want it to contain %q", tt.connStr, got, tt.want)
			}
		})
	}
}

func TestValidateConnString(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		wantErr error
	}{
		{"valid url", "postgres://user@localhost:5432/questlog", nil},
		{"valid dsn", "host=localhost user=me dbname=questlog", nil},
		{"empty", "  ", ErrInvalidConnectionString},
		{"url with password", "postgres://user:pw@localhost/questlog", ErrEmbeddedCredentials},
		{"dsn with password", "host=localhost user=me password=pw", ErrEmbeddedCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnString(tt.connStr)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
