// Package localstore provides a small file-backed key-value store with
// browser localStorage semantics: synchronous reads and writes, string keys,
// opaque JSON values, last-write-wins, and no versioning or migration.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// Store persists string-keyed JSON blobs in a single file. All operations
// are safe for concurrent use, though the expected usage is a single writer.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// Open loads the store at path, creating parent directories as needed.
// A missing backing file yields an empty store. A corrupt backing file also
// yields an empty store: the contents are not a stable contract and the next
// write replaces them wholesale.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}

	s := &Store{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read store file")
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get returns the raw JSON value stored under key and whether it exists.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and writes the full store back to disk.
func (s *Store) Set(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

// Remove deletes key from the store and writes the change back to disk.
// Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush serializes the full map and atomically replaces the backing file.
// Callers must hold s.mu.
func (s *Store) flush() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, "marshal store")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace store file")
	}
	return nil
}
