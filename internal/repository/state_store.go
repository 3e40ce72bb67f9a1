package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var validStateKey = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// FileStateStore persists UI state (watchlists, layouts, drawings, display
// settings) as one JSON file per key, so every device connecting to the
// server sees the same state.
type FileStateStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStateStore creates a store writing under dir.
func NewFileStateStore(dir string) *FileStateStore {
	return &FileStateStore{dir: dir}
}

func (s *FileStateStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the value for key, or false when the key is missing, unsafe,
// or its file is unreadable.
func (s *FileStateStore) Load(key string) (interface{}, bool) {
	if !validStateKey.MatchString(key) {
		return nil, false
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return v, true
}

// LoadAll returns every stored key. Unreadable entries are skipped.
func (s *FileStateStore) LoadAll() map[string]interface{} {
	out := make(map[string]interface{})
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return out
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			continue
		}
		out[strings.TrimSuffix(name, ".json")] = v
	}
	return out
}

// Save persists one key atomically (write to a temp file, then rename).
func (s *FileStateStore) Save(key string, value interface{}) error {
	if !validStateKey.MatchString(key) {
		return fmt.Errorf("invalid state key %q", key)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace state %s: %w", key, err)
	}
	return nil
}

// Delete removes one key. Deleting a missing key is not an error.
func (s *FileStateStore) Delete(key string) error {
	if !validStateKey.MatchString(key) {
		return fmt.Errorf("invalid state key %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}
