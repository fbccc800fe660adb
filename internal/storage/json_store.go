package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/questlog/internal/constants"
)

type jsonFile struct {
	Version int                        `json:"version"`
	Slots   map[string]json.RawMessage `json:"slots"`
}

// JSONStore keeps every slot in a single JSON document.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &jsonFile{
		Version: constants.SchemaVersion,
		Slots:   make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &jsonFile{}
	if err := json.Unmarshal(data, file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if file.Version > constants.SchemaVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade questlog", file.Version, constants.SchemaVersion)
	}
	if file.Slots == nil {
		file.Slots = make(map[string]json.RawMessage)
	}
	s.file = file
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file in the same directory and renames it over the
// store so a crash never leaves a half-written document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".questlog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}
	raw, ok := s.file.Slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	raw := make(json.RawMessage, len(value))
	copy(raw, value)
	s.file.Slots[key] = raw
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	if _, ok := s.file.Slots[key]; !ok {
		return nil
	}
	delete(s.file.Slots, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.file == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.file.Slots))
	for k := range s.file.Slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
