// Package lock keeps two questlog processes from writing the same store.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/logger"
)

var ErrLocked = errors.New("store is locked by another process")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile. The file holds "pid|executable".
type Lock struct {
	path string
	pid  int
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}

// Acquire takes the lock in dir. A lockfile left by a process that is no
// longer running is taken over.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)
	pid := getpidFunc()

	if holder, ok := readHolder(path); ok {
		if holder == pid {
			return &Lock{path: path, pid: pid}, nil
		}
		if isAlive(holder) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
		}
		logger.Info("Removing stale lockfile", "path", path, "pid", holder)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%d|%s\n", pid, executableName()); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

func readHolder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		// malformed lockfiles are treated as stale
		return -1, true
	}
	return pid, true
}

func isAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := findProcessFunc(pid)
	return err == nil && process != nil
}

// Release removes the lockfile if it still belongs to this process
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if holder, ok := readHolder(l.path); !ok || holder != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}
