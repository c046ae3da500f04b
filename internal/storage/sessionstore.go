package storage

import (
	"fmt"
	"sort"
	"sync"

	"context"

	"github.com/lumen-labs/lumen/pkg/models"
)

// SessionStore manages the durable list of completed sessions, partitioned
// into one list per calendar day.
type SessionStore interface {
	// GenerateID returns the next sequential session ID in S-XXXXX format.
	GenerateID(ctx context.Context) (string, error)
	// Append adds a completed session to its day's list. Appending a
	// session ID that is already present in the list is a no-op reported
	// via the boolean, so a re-driven finalization never counts a session
	// twice.
	Append(ctx context.Context, session models.Session) (added bool, err error)
	// Day returns the sessions recorded for one calendar day, oldest first.
	Day(ctx context.Context, day string) ([]models.Session, error)
	// Recent returns completed sessions ordered newest first, limited to
	// the given count (0 means no limit).
	Recent(ctx context.Context, limit int) ([]models.Session, error)
	// TotalCount returns the number of completed sessions ever recorded.
	TotalCount(ctx context.Context) (int, error)
}

// sessionIndex tracks which day lists exist and the running total, so
// Recent and TotalCount avoid scanning the whole keyspace.
type sessionIndex struct {
	Version string   `yaml:"version"`
	Days    []string `yaml:"days"`
	Total   int      `yaml:"total"`
}

type kvSessionStore struct {
	kv KV
	// mu serializes the counter and index read-modify-write sequences.
	mu sync.Mutex
}

// NewSessionStore creates a SessionStore on top of the given KV medium.
func NewSessionStore(kv KV) SessionStore {
	return &kvSessionStore{kv: kv}
}

const (
	counterKey      = "sessions/counter"
	sessionIndexKey = "sessions/index"
)

func dayListKey(day string) string {
	return "sessions/" + day
}

type counterRecord struct {
	Counter int `yaml:"counter"`
}

// GenerateID reads and increments the session counter, returning the next
// sequential ID in S-XXXXX format.
func (s *kvSessionStore) GenerateID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec counterRecord
	if _, err := loadYAML(ctx, s.kv, counterKey, &rec); err != nil {
		return "", fmt.Errorf("generating session ID: reading counter: %w", err)
	}
	rec.Counter++
	if err := saveYAML(ctx, s.kv, counterKey, &rec); err != nil {
		return "", fmt.Errorf("generating session ID: writing counter: %w", err)
	}
	return fmt.Sprintf("S-%05d", rec.Counter), nil
}

// Append writes the session into its day list and updates the index.
func (s *kvSessionStore) Append(ctx context.Context, session models.Session) (bool, error) {
	if session.ID == "" {
		return false, fmt.Errorf("appending session: ID must not be empty")
	}
	day := session.StartedAt.Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	var list models.DayList
	if _, err := loadYAML(ctx, s.kv, dayListKey(day), &list); err != nil {
		return false, fmt.Errorf("appending session: reading day list: %w", err)
	}
	for _, existing := range list.Sessions {
		if existing.ID == session.ID {
			return false, nil
		}
	}

	list.Day = day
	list.Sessions = append(list.Sessions, session)
	if err := saveYAML(ctx, s.kv, dayListKey(day), &list); err != nil {
		return false, fmt.Errorf("appending session: writing day list: %w", err)
	}

	var idx sessionIndex
	if _, err := loadYAML(ctx, s.kv, sessionIndexKey, &idx); err != nil {
		return false, fmt.Errorf("appending session: reading index: %w", err)
	}
	if idx.Version == "" {
		idx.Version = "1.0"
	}
	found := false
	for _, d := range idx.Days {
		if d == day {
			found = true
			break
		}
	}
	if !found {
		idx.Days = append(idx.Days, day)
		sort.Strings(idx.Days)
	}
	idx.Total++
	if err := saveYAML(ctx, s.kv, sessionIndexKey, &idx); err != nil {
		return false, fmt.Errorf("appending session: writing index: %w", err)
	}
	return true, nil
}

// Day returns the session list for one calendar day. A missing day reads as
// empty, never as an error.
func (s *kvSessionStore) Day(ctx context.Context, day string) ([]models.Session, error) {
	var list models.DayList
	if _, err := loadYAML(ctx, s.kv, dayListKey(day), &list); err != nil {
		return nil, fmt.Errorf("reading day %s: %w", day, err)
	}
	return list.Sessions, nil
}

// Recent walks day lists newest first, collecting sessions until the limit
// is reached.
func (s *kvSessionStore) Recent(ctx context.Context, limit int) ([]models.Session, error) {
	var idx sessionIndex
	if _, err := loadYAML(ctx, s.kv, sessionIndexKey, &idx); err != nil {
		return nil, fmt.Errorf("reading session index: %w", err)
	}

	var result []models.Session
	for i := len(idx.Days) - 1; i >= 0; i-- {
		sessions, err := s.Day(ctx, idx.Days[i])
		if err != nil {
			return nil, err
		}
		// Within a day, newest first.
		for j := len(sessions) - 1; j >= 0; j-- {
			result = append(result, sessions[j])
			if limit > 0 && len(result) == limit {
				return result, nil
			}
		}
	}
	return result, nil
}

// TotalCount returns the running total from the index.
func (s *kvSessionStore) TotalCount(ctx context.Context) (int, error) {
	var idx sessionIndex
	if _, err := loadYAML(ctx, s.kv, sessionIndexKey, &idx); err != nil {
		return 0, fmt.Errorf("reading session index: %w", err)
	}
	return idx.Total, nil
}
