package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumen-labs/lumen/internal/storage"
	"github.com/lumen-labs/lumen/pkg/models"
)

func testSnapshot(id string) models.ActiveSessionSnapshot {
	return models.ActiveSessionSnapshot{
		ID:             id,
		StartedAt:      time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC),
		Origin:         models.OriginAutomaticMorning,
		InMorningPrime: true,
	}
}

func TestLifecycle_BeginTakeComplete(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	lc := NewLifecycle(storage.NewSnapshotStore(kv))

	if lc.Active() != nil {
		t.Fatal("expected Idle lifecycle")
	}
	if _, err := lc.Take(); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	if err := lc.Begin(ctx, testSnapshot("S-00001")); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := lc.Begin(ctx, testSnapshot("S-00002")); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	snap, err := lc.Take()
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if snap.ID != "S-00001" {
		t.Errorf("expected S-00001, got %s", snap.ID)
	}

	if err := lc.Complete(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if lc.Active() != nil {
		t.Error("expected Idle after complete")
	}
}

func TestLifecycle_ResumeAfterRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	lc1 := NewLifecycle(storage.NewSnapshotStore(kv))
	if err := lc1.Begin(ctx, testSnapshot("S-00007")); err != nil {
		t.Fatalf("begin: %v", err)
	}

	// Simulated restart: fresh lifecycle over the same medium.
	lc2 := NewLifecycle(storage.NewSnapshotStore(kv))
	corrupt, err := lc2.Resume(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if corrupt {
		t.Error("snapshot unexpectedly corrupt")
	}

	snap := lc2.Active()
	if snap == nil || snap.ID != "S-00007" {
		t.Fatalf("expected resumed S-00007, got %+v", snap)
	}
	if !snap.StartedAt.Equal(testSnapshot("S-00007").StartedAt) {
		t.Errorf("start time not preserved across restart: %v", snap.StartedAt)
	}
}

func TestLifecycle_ResumeCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	if err := kv.Set(ctx, "active", []byte("{{{not yaml")); err != nil {
		t.Fatal(err)
	}

	lc := NewLifecycle(storage.NewSnapshotStore(kv))
	corrupt, err := lc.Resume(ctx)
	if err != nil {
		t.Fatalf("corrupt snapshot must not fail resume: %v", err)
	}
	if !corrupt {
		t.Error("expected corrupt flag")
	}
	if lc.Active() != nil {
		t.Error("expected Idle after discarding corrupt snapshot")
	}

	// Self-healing: the bad value is gone.
	if _, ok, _ := kv.Get(ctx, "active"); ok {
		t.Error("corrupt snapshot should have been removed")
	}
}

func TestLifecycle_BeginFailedWriteStaysIdle(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: storage.NewMemoryKV(), failSets: -1}
	lc := NewLifecycle(storage.NewSnapshotStore(kv))

	if err := lc.Begin(ctx, testSnapshot("S-00001")); err == nil {
		t.Fatal("expected write failure")
	}
	if lc.Active() != nil {
		t.Error("failed Begin must leave lifecycle Idle")
	}
}
