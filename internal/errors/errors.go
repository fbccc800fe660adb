package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/lock"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/quest"
	"github.com/julianstephens/questlog/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{lock.ErrLocked, "another questlog process is using this store; close it and retry"},
	{storage.ErrNotInitialized, "run 'questlog init' first"},
	{quest.ErrHabitNotFound, "run 'questlog habit list --archived' to see habit ids"},
	{diary.ErrEntryNotFound, "run 'questlog diary list' to see entry ids"},
	{quest.ErrInsufficientCoins, "complete more habits to earn coins"},
	{quest.ErrUnknownItem, "run 'questlog shop list' to see available items"},
}

// Hint returns a short suggestion for errors the user can act on
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v (hint: %s)", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
