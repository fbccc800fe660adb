package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/questlog/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withProcesses(t *testing.T, pid int, alive map[int]bool) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() { findProcessFunc, getpidFunc = oldFind, oldPid })
	getpidFunc = func() int { return pid }
	findProcessFunc = func(p int) (ps.Process, error) {
		if alive[p] {
			return &mockProcess{pid: p, executable: "questlog"}, nil
		}
		return nil, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]bool{100: true})

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, constants.LockfileName)); err != nil {
		t.Fatalf("lockfile missing: %v", err)
	}

	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("re-acquiring from the same process should succeed: %v", err)
	}
	if again.Path() != l.Path() {
		t.Error("expected same lockfile path")
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Error("lockfile should be removed")
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]bool{100: true, 200: true})
	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("200|questlog\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
}

func TestAcquireTakesOverStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dead process", "300|questlog\n"},
		{"malformed", "garbage"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, 100, map[int]bool{100: true})
			path := filepath.Join(dir, constants.LockfileName)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("expected stale lock to be taken over, got %v", err)
			}
			if holder, ok := readHolder(path); !ok || holder != 100 {
				t.Errorf("lockfile holder = %d, want 100", holder)
			}
			_ = l.Release()
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 100, map[int]bool{100: true})
	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := os.WriteFile(l.Path(), []byte("999|questlog\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(l.Path()); err != nil {
		t.Error("lockfile owned by another process must be kept")
	}

	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release should be a no-op, got %v", err)
	}
}
