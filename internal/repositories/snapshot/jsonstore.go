// Package snapshot persists the whole account table as a single JSON file.
//
// Writes are atomic: the snapshot is written to a temporary file which then
// replaces the previous one via rename, so a crash mid-write never corrupts
// the prior snapshot.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
)

// FileStore implements ports.SnapshotStore on a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a snapshot store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Ensure FileStore implements the SnapshotStore interface
var _ ports.SnapshotStore = (*FileStore)(nil)

// Load reads the snapshot at the configured path. A missing file means an
// empty table, not an error.
func (s *FileStore) Load(_ context.Context) ([]domain.Account, *domain.Administrator, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot %s: %w", s.path, err)
	}
	return snap.Accounts, snap.Administrator, nil
}

// Save writes the complete table as one snapshot, fully overwriting the
// previous one. The previous snapshot stays intact until the replacement is
// fully written.
func (s *FileStore) Save(_ context.Context, accounts []domain.Account, admin *domain.Administrator) error {
	snap := Snapshot{
		Meta: Meta{
			Storage:   "json_snapshot",
			Version:   currentVersion,
			Timestamp: time.Now(),
		},
		Administrator: admin,
		Accounts:      accounts,
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
