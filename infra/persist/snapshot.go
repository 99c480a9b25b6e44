package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/powerclass/marketctl/core/model"
)

// Snapshot is the cross-command identity persisted between invocations:
// selected role, selected utility and the last known game session. Cached
// collections are deliberately not part of the snapshot.
type Snapshot struct {
	Role           model.Role         `json:"role,omitempty"`
	UtilityID      string             `json:"utility_id,omitempty"`
	CurrentSession *model.GameSession `json:"current_session,omitempty"`
}

// SnapshotStore is the serialize/deserialize boundary for client identity.
type SnapshotStore interface {
	Save(Snapshot) error
	Load() (Snapshot, error)
	Clear() error
}

// FileStore persists the snapshot as a single JSON document. Writes are
// atomic (temp file then rename) so a crash never leaves a torn snapshot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at path, creating parent directories as
// needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Save writes the snapshot atomically.
func (s *FileStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. A missing file yields a zero snapshot, not an
// error.
func (s *FileStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Clear removes the snapshot file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// MemStore keeps the snapshot in memory. Used in tests.
type MemStore struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Save(snap Snapshot) error {
	s.mu.Lock()
	s.snap = snap
	s.set = true
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Snapshot{}, nil
	}
	return s.snap, nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	s.snap = Snapshot{}
	s.set = false
	s.mu.Unlock()
	return nil
}
