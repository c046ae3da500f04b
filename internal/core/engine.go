package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
)

// SessionEngine is the orchestrator for exposure sessions: it manages the
// active-session lifecycle, folds completed and manually entered sessions
// into per-day aggregates, and keeps the streak current. All completion
// paths funnel through one shared finalization routine so they cannot
// diverge in bookkeeping.
type SessionEngine interface {
	// Resume reloads persisted state after a process start.
	Resume(ctx context.Context) error
	// StartAutomaticSession begins tracking a session at the current
	// instant. ErrAlreadyActive if a session is running.
	StartAutomaticSession(ctx context.Context) (*models.ActiveSessionSnapshot, error)
	// EndSession completes the running session. ErrNoActiveSession if none.
	EndSession(ctx context.Context) (*models.Session, error)
	// AddManualSession records a completed session for an explicit time
	// range, with no Active phase. Prime classification is evaluated at
	// the session's own date and time, not "now".
	AddManualSession(ctx context.Context, start, end time.Time) (*models.Session, error)
	// GetStats computes the read-only projection served to the UI layer.
	GetStats(ctx context.Context) (*models.Stats, error)
	// GetActiveSession returns the running session snapshot, or nil.
	GetActiveSession() *models.ActiveSessionSnapshot
	// GetSessionHistory returns completed sessions, newest first.
	GetSessionHistory(ctx context.Context, limit int) ([]models.Session, error)
	// WindowsFor returns the prime windows for a date at the current (or
	// fallback) location.
	WindowsFor(date time.Time) models.SolarWindows
}

// EngineDeps bundles the injected collaborators for NewSessionEngine.
type EngineDeps struct {
	Config     *models.Config
	Solar      *SolarCalculator
	Lifecycle  *Lifecycle
	Sessions   SessionStore
	Aggregates AggregateStore
	Streaks    StreakStore
	Clock      Clock
	Location   LocationProvider
	Events     EventLogger // may be nil
}

type sessionEngine struct {
	cfg        *models.Config
	solar      *SolarCalculator
	lifecycle  *Lifecycle
	sessions   SessionStore
	aggregates AggregateStore
	streaks    StreakStore
	clock      Clock
	location   LocationProvider
	events     EventLogger

	// mu serializes session transitions: concurrent starts cannot both
	// pass the idle guard, and concurrent completions cannot race the same
	// day's aggregate or the streak value.
	mu sync.Mutex
}

// NewSessionEngine creates a SessionEngine with all dependencies injected.
func NewSessionEngine(deps EngineDeps) SessionEngine {
	return &sessionEngine{
		cfg:        deps.Config,
		solar:      deps.Solar,
		lifecycle:  deps.Lifecycle,
		sessions:   deps.Sessions,
		aggregates: deps.Aggregates,
		streaks:    deps.Streaks,
		clock:      deps.Clock,
		location:   deps.Location,
		events:     deps.Events,
	}
}

// Resume reloads the persisted Active snapshot, if any. A corrupt snapshot
// has already been discarded by the store; it is logged and the engine
// continues Idle.
func (e *sessionEngine) Resume(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.StorageTimeout)
	defer cancel()

	corrupt, err := e.lifecycle.Resume(ctx)
	if err != nil {
		return fmt.Errorf("resuming session state: %w", err)
	}
	if corrupt {
		e.logEvent("snapshot.corrupt", map[string]any{"action": "discarded"})
	}
	return nil
}

func (e *sessionEngine) GetActiveSession() *models.ActiveSessionSnapshot {
	return e.lifecycle.Active()
}

// StartAutomaticSession classifies "now" against the prime windows,
// persists the Active snapshot, and returns it. The prime flags are frozen
// here; they are never recomputed after the fact.
func (e *sessionEngine) StartAutomaticSession(ctx context.Context) (*models.ActiveSessionSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Checked under the engine mutex so a losing concurrent start fails
	// here, before it burns a session ID.
	if e.lifecycle.Active() != nil {
		return nil, ErrAlreadyActive
	}

	now := e.clock.Now()
	loc := e.currentLocation()
	windows := e.solar.ComputeWindows(loc, e.cfg.FallbackLocation, now)
	inMorning, inEvening := Classify(windows, HourOfDay(now))

	origin := models.OriginAutomaticMorning
	switch {
	case inMorning:
		origin = models.OriginAutomaticMorning
	case inEvening:
		origin = models.OriginAutomaticEvening
	case HourOfDay(now) >= 12:
		// Outside both windows: bucket by half of day.
		origin = models.OriginAutomaticEvening
	}

	var id string
	if err := e.withRetry(ctx, "generate session id", func(ctx context.Context) error {
		var err error
		id, err = e.sessions.GenerateID(ctx)
		return err
	}); err != nil {
		return nil, err
	}

	snap := models.ActiveSessionSnapshot{
		ID:             id,
		StartedAt:      now,
		Origin:         origin,
		Location:       loc,
		InMorningPrime: inMorning,
		InEveningPrime: inEvening,
	}

	if err := e.withRetry(ctx, "persist active snapshot", func(ctx context.Context) error {
		return e.lifecycle.Begin(ctx, snap)
	}); err != nil {
		return nil, err
	}

	e.logEvent("session.started", map[string]any{
		"session_id": id,
		"origin":     string(origin),
		"in_morning": inMorning,
		"in_evening": inEvening,
	})
	return &snap, nil
}

// EndSession completes the running session through the shared finalization
// routine, then clears the Active snapshot. The snapshot delete is last: a
// crash mid-end leaves the system either still Active or fully Completed,
// and the duplicate-ID guard in the session store keeps a re-driven end
// from counting the session twice.
func (e *sessionEngine) EndSession(ctx context.Context) (*models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.lifecycle.Take()
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	session := models.Session{
		ID:             snap.ID,
		StartedAt:      snap.StartedAt,
		EndedAt:        now,
		Origin:         snap.Origin,
		Location:       snap.Location,
		InMorningPrime: snap.InMorningPrime,
		InEveningPrime: snap.InEveningPrime,
	}

	completed, err := e.finalize(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := e.withRetry(ctx, "clear active snapshot", func(ctx context.Context) error {
		return e.lifecycle.Complete(ctx)
	}); err != nil {
		return nil, err
	}

	e.logEvent("session.completed", map[string]any{
		"session_id": completed.ID,
		"minutes":    completed.DurationMinutes,
		"qualifies":  completed.QualifiesForStreak,
	})
	return completed, nil
}

// AddManualSession validates and finalizes a user-entered session directly,
// with no Active phase. It shares finalize with EndSession so manual entry
// and end-of-session bookkeeping cannot diverge.
func (e *sessionEngine) AddManualSession(ctx context.Context, start, end time.Time) (*models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Reject before any durable write; finalize re-checks but would have
	// burned a session ID by then.
	if !end.After(start) {
		return nil, &ValidationError{Field: "end time", Reason: "must be after start time"}
	}

	loc := e.currentLocation()
	windows := e.solar.ComputeWindows(loc, e.cfg.FallbackLocation, start)
	inMorning, inEvening := Classify(windows, HourOfDay(start))

	var id string
	if err := e.withRetry(ctx, "generate session id", func(ctx context.Context) error {
		var err error
		id, err = e.sessions.GenerateID(ctx)
		return err
	}); err != nil {
		return nil, err
	}

	session := models.Session{
		ID:             id,
		StartedAt:      start,
		EndedAt:        end,
		Origin:         models.OriginManual,
		Location:       loc,
		InMorningPrime: inMorning,
		InEveningPrime: inEvening,
	}

	completed, err := e.finalize(ctx, session)
	if err != nil {
		return nil, err
	}

	e.logEvent("session.manual", map[string]any{
		"session_id": completed.ID,
		"minutes":    completed.DurationMinutes,
		"qualifies":  completed.QualifiesForStreak,
	})
	return completed, nil
}

// finalize is the single routine both completion paths go through: it
// validates the time range, derives duration and streak qualification,
// appends the session to its day list, folds it into the day's aggregate,
// and recomputes the streak. Only minutes inside a prime window count
// toward totals.
func (e *sessionEngine) finalize(ctx context.Context, session models.Session) (*models.Session, error) {
	if !session.EndedAt.After(session.StartedAt) {
		return nil, &ValidationError{Field: "end time", Reason: "must be after start time"}
	}

	session.DurationMinutes = int(session.EndedAt.Sub(session.StartedAt) / time.Minute)
	inPrime := session.InMorningPrime || session.InEveningPrime
	session.QualifiesForStreak = inPrime && session.DurationMinutes >= e.cfg.MinQualifyingMinutes

	var added bool
	if err := e.withRetry(ctx, "append session", func(ctx context.Context) error {
		var err error
		added, err = e.sessions.Append(ctx, session)
		return err
	}); err != nil {
		return nil, err
	}

	day := DayKey(session.StartedAt)
	switch {
	case !added:
		// Re-driven finalization of an already recorded session. The
		// additive update may not have landed before the previous attempt
		// failed, so rebuild the day's aggregate from its session list;
		// the rebuild is idempotent where AddMinutes is not.
		if err := e.rebuildAggregate(ctx, day); err != nil {
			return nil, err
		}
	case inPrime && session.DurationMinutes > 0:
		if err := e.withRetry(ctx, "update aggregate", func(ctx context.Context) error {
			_, err := e.aggregates.AddMinutes(ctx, day, session.DurationMinutes, session.QualifiesForStreak)
			return err
		}); err != nil {
			return nil, err
		}
	}

	streak, err := e.computeStreak(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.withRetry(ctx, "save streak", func(ctx context.Context) error {
		return e.streaks.Save(ctx, streak)
	}); err != nil {
		return nil, err
	}

	return &session, nil
}

// rebuildAggregate recomputes a day's aggregate from its session list and
// overwrites the stored record. Only prime-window sessions contribute, the
// same rule the additive path applies one session at a time.
func (e *sessionEngine) rebuildAggregate(ctx context.Context, day string) error {
	var sessions []models.Session
	if err := e.withRetry(ctx, "read day sessions", func(ctx context.Context) error {
		var err error
		sessions, err = e.sessions.Day(ctx, day)
		return err
	}); err != nil {
		return err
	}

	agg := models.DailyAggregate{Day: day}
	for _, s := range sessions {
		if s.InMorningPrime || s.InEveningPrime {
			agg.TotalMinutes += s.DurationMinutes
			agg.PrimeMinutes += s.DurationMinutes
			agg.Qualifying = agg.Qualifying || s.QualifiesForStreak
		}
	}

	return e.withRetry(ctx, "rebuild aggregate", func(ctx context.Context) error {
		return e.aggregates.Replace(ctx, agg)
	})
}

// computeStreak runs the pure backward walk over the per-day qualifying
// flags persisted alongside the aggregates.
func (e *sessionEngine) computeStreak(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.StorageTimeout)
	defer cancel()

	var readErr error
	qualifies := func(day string) bool {
		agg, err := e.aggregates.Read(ctx, day)
		if err != nil {
			readErr = err
			return false
		}
		return agg.Qualifying
	}
	streak := ComputeStreak(qualifies, e.clock.Now(), e.cfg.StreakHorizonDays)
	if readErr != nil {
		return 0, fmt.Errorf("computing streak: %w", readErr)
	}
	return streak, nil
}

// GetStats assembles the UI projection from the aggregate records for fixed
// day ranges: today, the trailing 7 days, the 7 days before that, and
// yesterday. It is pull-based; callers decide their own refresh cadence.
func (e *sessionEngine) GetStats(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.StorageTimeout)
	defer cancel()

	now := e.clock.Now()
	days := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		days = append(days, DayKey(now.AddDate(0, 0, -i)))
	}

	aggs, err := e.aggregates.ReadRange(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("reading aggregates for stats: %w", err)
	}

	stats := &models.Stats{}
	stats.TodayMinutes = aggs[days[0]].TotalMinutes
	stats.YesterdayPrimeMinutes = aggs[days[1]].PrimeMinutes
	for i := 0; i < 7; i++ {
		stats.WeeklyMinutes += aggs[days[i]].TotalMinutes
	}
	for i := 7; i < 14; i++ {
		stats.LastWeekMinutes += aggs[days[i]].TotalMinutes
	}

	stats.DayStreak, err = e.computeStreak(ctx)
	if err != nil {
		return nil, err
	}

	stats.TotalSessions, err = e.sessions.TotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting sessions for stats: %w", err)
	}
	return stats, nil
}

// GetSessionHistory returns completed sessions, newest first.
func (e *sessionEngine) GetSessionHistory(ctx context.Context, limit int) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.StorageTimeout)
	defer cancel()

	sessions, err := e.sessions.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading session history: %w", err)
	}
	return sessions, nil
}

// WindowsFor returns the prime windows for the given date.
func (e *sessionEngine) WindowsFor(date time.Time) models.SolarWindows {
	return e.solar.ComputeWindows(e.currentLocation(), e.cfg.FallbackLocation, date)
}

// currentLocation returns the provider position, or nil when unavailable so
// the solar calculator falls back silently.
func (e *sessionEngine) currentLocation() *models.LatLon {
	pos, ok := e.location.Current()
	if !ok {
		return nil
	}
	return &pos
}

// withRetry runs a durable-store operation with a bounded timeout, retrying
// once on failure. The second failure surfaces as a recoverable
// StorageError; in-memory state is not rolled back silently. Lifecycle and
// validation errors pass through untouched.
func (e *sessionEngine) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempt := func() error {
		ctx, cancel := context.WithTimeout(ctx, e.cfg.StorageTimeout)
		defer cancel()
		return fn(ctx)
	}

	err := attempt()
	if err == nil || !retryable(err) {
		return err
	}

	e.logEvent("storage.retry", map[string]any{"op": op, "error": err.Error()})
	if err = attempt(); err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func retryable(err error) bool {
	if errors.Is(err, ErrAlreadyActive) || errors.Is(err, ErrNoActiveSession) {
		return false
	}
	return !IsValidation(err)
}

func (e *sessionEngine) logEvent(eventType string, data map[string]any) {
	if e.events == nil {
		return
	}
	_ = e.events.LogEvent(eventType, data)
}
