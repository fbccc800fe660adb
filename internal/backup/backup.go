package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/logger"
)

// Kind is the on-disk format of a backed-up store
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindJSON   Kind = "json"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for file-backed stores
type Manager struct {
	dbPath    string
	backupDir string
	kind      Kind
	now       func() time.Time
}

// NewManager creates a backup manager for the store at dbPath. Stores whose
// path ends in .json are copied; anything else is treated as SQLite.
func NewManager(dbPath string) *Manager {
	kind := KindSQLite
	if strings.EqualFold(filepath.Ext(dbPath), ".json") {
		kind = KindJSON
	}
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		kind:      kind,
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) Kind() Kind {
	return m.kind
}

func (m *Manager) suffix() string {
	if m.kind == KindJSON {
		return ".json"
	}
	return ".db"
}

// CreateBackup writes a timestamped copy of the store and prunes old copies
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps a pre-restore safety copy from pruning the backup
// about to be restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.uniqueBackupPath()
	if err != nil {
		return "", err
	}

	switch m.kind {
	case KindJSON:
		if err := m.verify(m.dbPath); err != nil {
			return "", fmt.Errorf("source store appears to be corrupted: %w", err)
		}
		err = copyFile(m.dbPath, backupPath)
	default:
		err = m.backupDatabase(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	logger.Info("Backup created", "path", backupPath)
	return backupPath, nil
}

func (m *Manager) uniqueBackupPath() (string, error) {
	now := m.now()
	suffix := m.suffix()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+ts+suffix)
	}

	path := name(now.Format("20060102-1504"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ts := now.Format("20060102-150405")
	path = name(ts)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", ts, counter))
	}
}

// backupDatabase copies a SQLite store with VACUUM INTO, falling back to a
// plain file copy on engines that lack it.
func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	suffix := m.suffix()
	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, suffix) {
			continue
		}

		timestamp, ok := parseTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseTimestamp accepts YYYYMMDD-HHMM and YYYYMMDD-HHMMSS with an optional
// -N counter.
func parseTimestamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with a backup. The current store is
// backed up first. The store must be closed by the caller.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.dbPath); err == nil {
		safety, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}
	return safety, nil
}

func (m *Manager) verify(path string) error {
	if m.kind == KindJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var doc struct {
			Slots map[string]json.RawMessage `json:"slots"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		if doc.Slots == nil {
			return fmt.Errorf("missing slots")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("kv table not found")
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
