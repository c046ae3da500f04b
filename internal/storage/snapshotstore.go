package storage

import (
	"context"
	"fmt"

	"github.com/lumen-labs/lumen/pkg/models"
	"gopkg.in/yaml.v3"
)

const activeSnapshotKey = "active"

// SnapshotStore persists the active-session snapshot. Its presence in the
// KV medium is the sole source of truth for "a session is running".
type SnapshotStore interface {
	// Load returns the persisted snapshot, or nil when none exists. A
	// malformed snapshot is discarded and reported via corrupt=true, never
	// as a fatal error: the store self-heals to the absent state.
	Load(ctx context.Context) (snap *models.ActiveSessionSnapshot, corrupt bool, err error)
	Save(ctx context.Context, snap models.ActiveSessionSnapshot) error
	Clear(ctx context.Context) error
}

type kvSnapshotStore struct {
	kv KV
}

// NewSnapshotStore creates a SnapshotStore on top of the given KV medium.
func NewSnapshotStore(kv KV) SnapshotStore {
	return &kvSnapshotStore{kv: kv}
}

func (s *kvSnapshotStore) Load(ctx context.Context) (*models.ActiveSessionSnapshot, bool, error) {
	data, ok, err := s.kv.Get(ctx, activeSnapshotKey)
	if err != nil {
		return nil, false, fmt.Errorf("loading active snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var snap models.ActiveSessionSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil || snap.ID == "" || snap.StartedAt.IsZero() {
		// Unparseable or structurally invalid: discard and treat as absent.
		_ = s.kv.Remove(ctx, activeSnapshotKey)
		return nil, true, nil
	}
	return &snap, false, nil
}

func (s *kvSnapshotStore) Save(ctx context.Context, snap models.ActiveSessionSnapshot) error {
	if err := saveYAML(ctx, s.kv, activeSnapshotKey, &snap); err != nil {
		return fmt.Errorf("saving active snapshot: %w", err)
	}
	return nil
}

func (s *kvSnapshotStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, activeSnapshotKey); err != nil {
		return fmt.Errorf("clearing active snapshot: %w", err)
	}
	return nil
}
