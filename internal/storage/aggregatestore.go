package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumen-labs/lumen/pkg/models"
)

// AggregateStore maintains the per-day exposure totals. It owns the
// read-modify-write sequencing: additions to the same day are a single
// critical section, so two nearly simultaneous session completions both
// land instead of one overwriting the other.
//
// AddMinutes is additive, not idempotent; callers must invoke it exactly
// once per finalized session.
type AggregateStore interface {
	AddMinutes(ctx context.Context, day string, minutes int, qualifying bool) (models.DailyAggregate, error)
	// Replace overwrites a day's record with a rebuilt aggregate. Unlike
	// AddMinutes it is idempotent; re-driven finalizations use it to
	// reconcile a day whose additive update may have been lost.
	Replace(ctx context.Context, agg models.DailyAggregate) error
	// Read returns the aggregate for a day. A missing day reads as zero,
	// never as an error.
	Read(ctx context.Context, day string) (models.DailyAggregate, error)
	ReadRange(ctx context.Context, days []string) (map[string]models.DailyAggregate, error)
}

type kvAggregateStore struct {
	kv KV

	// mu guards the locks map; each day gets its own mutex so unrelated
	// days do not contend.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAggregateStore creates an AggregateStore on top of the given KV medium.
func NewAggregateStore(kv KV) AggregateStore {
	return &kvAggregateStore{kv: kv, locks: make(map[string]*sync.Mutex)}
}

func aggregateKey(day string) string {
	return "aggregates/" + day
}

func (s *kvAggregateStore) dayLock(day string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[day]
	if !ok {
		l = &sync.Mutex{}
		s.locks[day] = l
	}
	return l
}

// AddMinutes adds the delta to the day's totals and, when qualifying, marks
// the day as containing a streak-qualifying session. The whole
// read-add-write runs under the day's lock.
func (s *kvAggregateStore) AddMinutes(ctx context.Context, day string, minutes int, qualifying bool) (models.DailyAggregate, error) {
	if minutes < 0 {
		return models.DailyAggregate{}, fmt.Errorf("adding minutes for %s: negative delta %d", day, minutes)
	}

	lock := s.dayLock(day)
	lock.Lock()
	defer lock.Unlock()

	agg, err := s.read(ctx, day)
	if err != nil {
		return models.DailyAggregate{}, err
	}

	agg.Day = day
	agg.TotalMinutes += minutes
	agg.PrimeMinutes += minutes
	agg.Qualifying = agg.Qualifying || qualifying

	if err := saveYAML(ctx, s.kv, aggregateKey(day), &agg); err != nil {
		return models.DailyAggregate{}, fmt.Errorf("writing aggregate for %s: %w", day, err)
	}
	return agg, nil
}

func (s *kvAggregateStore) Replace(ctx context.Context, agg models.DailyAggregate) error {
	if agg.Day == "" {
		return fmt.Errorf("replacing aggregate: empty day key")
	}

	lock := s.dayLock(agg.Day)
	lock.Lock()
	defer lock.Unlock()

	if err := saveYAML(ctx, s.kv, aggregateKey(agg.Day), &agg); err != nil {
		return fmt.Errorf("writing aggregate for %s: %w", agg.Day, err)
	}
	return nil
}

func (s *kvAggregateStore) read(ctx context.Context, day string) (models.DailyAggregate, error) {
	var agg models.DailyAggregate
	if _, err := loadYAML(ctx, s.kv, aggregateKey(day), &agg); err != nil {
		return models.DailyAggregate{}, fmt.Errorf("reading aggregate for %s: %w", day, err)
	}
	agg.Day = day
	return agg, nil
}

func (s *kvAggregateStore) Read(ctx context.Context, day string) (models.DailyAggregate, error) {
	return s.read(ctx, day)
}

func (s *kvAggregateStore) ReadRange(ctx context.Context, days []string) (map[string]models.DailyAggregate, error) {
	result := make(map[string]models.DailyAggregate, len(days))
	for _, day := range days {
		agg, err := s.read(ctx, day)
		if err != nil {
			return nil, err
		}
		result[day] = agg
	}
	return result, nil
}
