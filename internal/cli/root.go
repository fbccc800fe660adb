package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/questlog/internal/backup"
	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/events"
	"github.com/julianstephens/questlog/internal/keyring"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/quest"
	"github.com/julianstephens/questlog/internal/reward"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/weather"
)

// Context is passed to every command's Run method
type Context struct {
	Store    storage.Provider
	Bus      *events.Bus
	Quest    *quest.Service
	Diary    *diary.Service
	Weather  *weather.Client
	Location *time.Location
	Out      io.Writer
}

// NewContext wires the ledgers to store. The diary reward is subscribed to
// the bus here.
func NewContext(store storage.Provider, loc *time.Location, weatherOrigin string) *Context {
	if loc == nil {
		loc = time.Local
	}
	bus := events.NewBus()
	reward.Register(bus, store)
	return &Context{
		Store:    store,
		Bus:      bus,
		Quest:    quest.NewService(store, loc),
		Diary:    diary.NewService(store, bus, loc),
		Weather:  weather.NewClient(weatherOrigin, keyring.LookupToken()),
		Location: loc,
		Out:      os.Stdout,
	}
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

func (c *Context) printTable(table *uitable.Table) {
	fmt.Fprintln(c.Out, table)
}

func newTable(headers ...interface{}) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	if len(headers) > 0 {
		table.AddRow(headers...)
	}
	return table
}

// backupManager returns the backup manager for file-backed stores
func (c *Context) backupManager() (*backup.Manager, error) {
	switch c.Store.(type) {
	case *storage.SQLiteStore, *storage.JSONStore:
		return backup.NewManager(c.Store.GetConfigPath()), nil
	default:
		return nil, fmt.Errorf("backups are only supported for SQLite and JSON stores")
	}
}

// PerformAutomaticBackup runs a best-effort backup on startup
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.backupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func bar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func displayPath(p string) string {
	if home, err := os.UserHomeDir(); err == nil {
		if rel, err := filepath.Rel(home, p); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.Join("~", rel)
		}
	}
	return p
}
