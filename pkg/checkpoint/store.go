package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists checkpoint state. The generators depend on this interface so
// tests can run against an in-memory store.
type Store interface {
	// Load decodes the named checkpoint into v. A missing checkpoint is not
	// an error: v is left at its zero state and found is false. Malformed
	// content is an error and must not be silently reset, otherwise progress
	// loss would go unnoticed.
	Load(name string, v any) (found bool, err error)
	// Save overwrites the named checkpoint with the full current state.
	Save(name string, v any) error
	// Reset deletes the named checkpoint. Resetting an absent checkpoint is
	// not an error.
	Reset(name string) error
}

// FileStore keeps checkpoints as human-readable JSON files in a directory.
type FileStore struct {
	Dir string
}

func (s *FileStore) Load(name string, v any) (bool, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read checkpoint %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("corrupt checkpoint %s: %w", name, err)
	}
	return true, nil
}

func (s *FileStore) Save(name string, v any) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create checkpoint dir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal checkpoint %s: %w", name, err)
	}
	// write-then-rename so a crash mid-save never truncates the checkpoint
	tmp := filepath.Join(s.Dir, name+".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("could not write checkpoint %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, name)); err != nil {
		return fmt.Errorf("could not replace checkpoint %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Reset(name string) error {
	err := os.Remove(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

func (s *MemStore) Load(name string, v any) (bool, error) {
	b, ok := s.data[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("corrupt checkpoint %s: %w", name, err)
	}
	return true, nil
}

func (s *MemStore) Save(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data[name] = b
	return nil
}

func (s *MemStore) Reset(name string) error {
	delete(s.data, name)
	return nil
}
