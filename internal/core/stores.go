package core

import (
	"context"

	"github.com/lumen-labs/lumen/pkg/models"
)

// The store interfaces below are the subsets of the storage package that
// the engine needs. Defining them locally keeps core independent of the
// storage package; the storage implementations satisfy them directly.

// SessionStore persists completed sessions, partitioned per calendar day.
type SessionStore interface {
	GenerateID(ctx context.Context) (string, error)
	Append(ctx context.Context, session models.Session) (added bool, err error)
	Day(ctx context.Context, day string) ([]models.Session, error)
	Recent(ctx context.Context, limit int) ([]models.Session, error)
	TotalCount(ctx context.Context) (int, error)
}

// AggregateStore persists per-day exposure totals.
type AggregateStore interface {
	AddMinutes(ctx context.Context, day string, minutes int, qualifying bool) (models.DailyAggregate, error)
	Replace(ctx context.Context, agg models.DailyAggregate) error
	Read(ctx context.Context, day string) (models.DailyAggregate, error)
	ReadRange(ctx context.Context, days []string) (map[string]models.DailyAggregate, error)
}

// SnapshotStore persists the active-session snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) (snap *models.ActiveSessionSnapshot, corrupt bool, err error)
	Save(ctx context.Context, snap models.ActiveSessionSnapshot) error
	Clear(ctx context.Context) error
}

// StreakStore persists the current-streak scalar. The engine only ever
// writes it; reads recompute from the aggregates so the value cannot go
// stale across midnight.
type StreakStore interface {
	Save(ctx context.Context, streak int) error
}

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability
// package. Implementations must tolerate being nil-checked by callers;
// logging failures are never propagated.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}
