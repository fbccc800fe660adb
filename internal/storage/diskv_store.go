package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/questlog/internal/constants"
)

const (
	// DiskvPrefix selects the diskv backend in a --config value.
	DiskvPrefix = "diskv:"

	diskvMarker = ".questlog"
)

// DiskvStore keeps one file per slot under a base directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{
		basePath: basePath,
	}
}

func (s *DiskvStore) open() {
	if s.d != nil {
		return
	}
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		TempDir:      filepath.Join(s.basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	marker := filepath.Join(s.basePath, diskvMarker)
	if err := os.WriteFile(marker, []byte(fmt.Sprintf("%d\n", constants.SchemaVersion)), 0600); err != nil {
		return fmt.Errorf("failed to write store marker: %w", err)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Load() error {
	if _, err := os.Stat(filepath.Join(s.basePath, diskvMarker)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read store marker: %w", err)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Close() error {
	return nil
}

func (s *DiskvStore) Get(key string) ([]byte, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	if err := validDiskvKey(key); err != nil {
		return nil, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return val, nil
}

func (s *DiskvStore) Put(key string, value []byte) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if err := validDiskvKey(key); err != nil {
		return err
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Delete(key string) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *DiskvStore) Keys() ([]string, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	var keys []string
	for k := range s.d.Keys(nil) {
		if strings.HasPrefix(k, ".") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DiskvStore) GetConfigPath() string {
	return DiskvPrefix + s.basePath
}

func validDiskvKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
