package core

import (
	"context"
	"sync"

	"github.com/lumen-labs/lumen/pkg/models"
)

// Lifecycle is the state machine for the one active exposure session:
// Idle -> Active -> Completed. Completed is terminal; the next session is a
// new object. The Active state is mirrored to durable storage so it
// survives process restarts.
type Lifecycle struct {
	snapshots SnapshotStore

	mu      sync.Mutex
	current *models.ActiveSessionSnapshot
}

// NewLifecycle creates a Lifecycle in the Idle state.
func NewLifecycle(snapshots SnapshotStore) *Lifecycle {
	return &Lifecycle{snapshots: snapshots}
}

// Resume reloads any persisted Active snapshot after a process start. A
// corrupt snapshot is discarded by the store and reported so the caller can
// log it; it never fails the resume.
func (l *Lifecycle) Resume(ctx context.Context) (corrupt bool, err error) {
	snap, corrupt, err := l.snapshots.Load(ctx)
	if err != nil {
		return false, err
	}
	l.mu.Lock()
	l.current = snap
	l.mu.Unlock()
	return corrupt, nil
}

// Active returns a copy of the running session snapshot, or nil when Idle.
func (l *Lifecycle) Active() *models.ActiveSessionSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return nil
	}
	cp := *l.current
	return &cp
}

// Begin transitions Idle -> Active, persisting the snapshot first. The
// in-memory state only changes once the durable write succeeded, so a
// failed Begin leaves the lifecycle Idle.
func (l *Lifecycle) Begin(ctx context.Context, snap models.ActiveSessionSnapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		return ErrAlreadyActive
	}
	if err := l.snapshots.Save(ctx, snap); err != nil {
		return err
	}
	cp := snap
	l.current = &cp
	return nil
}

// Take returns the active snapshot for finalization without touching
// durable state. ErrNoActiveSession when Idle.
func (l *Lifecycle) Take() (models.ActiveSessionSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return models.ActiveSessionSnapshot{}, ErrNoActiveSession
	}
	return *l.current, nil
}

// Complete deletes the durable snapshot and returns the lifecycle to Idle.
// Called last in the finalization sequence: a crash before this point
// leaves the system "still Active", after it "fully Completed".
func (l *Lifecycle) Complete(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.snapshots.Clear(ctx); err != nil {
		return err
	}
	l.current = nil
	return nil
}
