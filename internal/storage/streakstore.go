package storage

import (
	"context"
	"fmt"
)

const streakKey = "streak"

// StreakStore persists the single current-streak scalar.
type StreakStore interface {
	// Load returns the last computed streak. A missing value reads as zero.
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, streak int) error
}

type streakRecord struct {
	CurrentStreak int `yaml:"current_streak"`
}

type kvStreakStore struct {
	kv KV
}

// NewStreakStore creates a StreakStore on top of the given KV medium.
func NewStreakStore(kv KV) StreakStore {
	return &kvStreakStore{kv: kv}
}

func (s *kvStreakStore) Load(ctx context.Context) (int, error) {
	var rec streakRecord
	if _, err := loadYAML(ctx, s.kv, streakKey, &rec); err != nil {
		return 0, fmt.Errorf("loading streak: %w", err)
	}
	return rec.CurrentStreak, nil
}

func (s *kvStreakStore) Save(ctx context.Context, streak int) error {
	if err := saveYAML(ctx, s.kv, streakKey, &streakRecord{CurrentStreak: streak}); err != nil {
		return fmt.Errorf("saving streak: %w", err)
	}
	return nil
}
