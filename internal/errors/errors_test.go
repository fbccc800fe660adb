package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/julianstephens/questlog/internal/lock"
	"github.com/julianstephens/questlog/internal/quest"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped sentinel gets hint",
			err:      fmt.Errorf("toggle: %w", quest.ErrHabitNotFound),
			expected: "Error: toggle: habit not found (hint: run 'questlog habit list --archived' to see habit ids)",
		},
		{
			name:     "lock error gets hint",
			err:      lock.ErrLocked,
			expected: "Error: store is locked by another process (hint: another questlog process is using this store; close it and retry)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %q not found", "Read")
	want := `Error: habit "Read" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestHintUnknownError(t *testing.T) {
	if hint := Hint(stderrors.New("boom")); hint != "" {
		t.Errorf("Hint() = %q, want empty", hint)
	}
}
