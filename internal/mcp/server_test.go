package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/lumen-labs/lumen/internal/core"
	"github.com/lumen-labs/lumen/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// --- Fake engine ---

type fakeEngine struct {
	active    *models.ActiveSessionSnapshot
	completed []models.Session
	stats     models.Stats
	startErr  error
	endErr    error
	manualErr error

	lastManualStart time.Time
	lastManualEnd   time.Time
}

func (f *fakeEngine) Resume(_ context.Context) error { return nil }

func (f *fakeEngine) StartAutomaticSession(_ context.Context) (*models.ActiveSessionSnapshot, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.active, nil
}

func (f *fakeEngine) EndSession(_ context.Context) (*models.Session, error) {
	if f.endErr != nil {
		return nil, f.endErr
	}
	if len(f.completed) == 0 {
		return nil, core.ErrNoActiveSession
	}
	return &f.completed[0], nil
}

func (f *fakeEngine) AddManualSession(_ context.Context, start, end time.Time) (*models.Session, error) {
	if f.manualErr != nil {
		return nil, f.manualErr
	}
	f.lastManualStart, f.lastManualEnd = start, end
	s := models.Session{
		ID:              "S-00010",
		StartedAt:       start,
		EndedAt:         end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Origin:          models.OriginManual,
	}
	return &s, nil
}

func (f *fakeEngine) GetStats(_ context.Context) (*models.Stats, error) {
	return &f.stats, nil
}

func (f *fakeEngine) GetActiveSession() *models.ActiveSessionSnapshot {
	return f.active
}

func (f *fakeEngine) GetSessionHistory(_ context.Context, limit int) ([]models.Session, error) {
	if limit > 0 && limit < len(f.completed) {
		return f.completed[:limit], nil
	}
	return f.completed, nil
}

func (f *fakeEngine) WindowsFor(_ time.Time) models.SolarWindows {
	return models.SolarWindows{MorningStart: 5.75, MorningEnd: 8.25, EveningStart: 17.5, EveningEnd: 19.75}
}

// --- Tests ---

func TestNewServer(t *testing.T) {
	s := NewServer(&fakeEngine{}, "1.0.0")
	if s == nil {
		t.Fatal("expected non-nil server")
	}
	if s.MCPServer() == nil {
		t.Fatal("expected underlying MCP server to be initialized")
	}
}

func TestNewServer_EmptyVersionDefaults(t *testing.T) {
	s := NewServer(&fakeEngine{}, "")
	if s == nil {
		t.Fatal("expected non-nil server")
	}
}

func TestHandleStartSession(t *testing.T) {
	started := time.Date(2026, 8, 28, 6, 30, 0, 0, time.UTC)
	engine := &fakeEngine{
		active: &models.ActiveSessionSnapshot{
			ID:             "S-00001",
			StartedAt:      started,
			Origin:         models.OriginAutomaticMorning,
			InMorningPrime: true,
		},
	}
	s := NewServer(engine, "test")

	result, out, err := s.handleStartSession(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected error result: %v", result.Content)
	}
	if out.ID != "S-00001" {
		t.Errorf("ID = %q, want S-00001", out.ID)
	}
	if !out.InMorningPrime {
		t.Error("expected InMorningPrime to carry over")
	}
	if out.Origin != string(models.OriginAutomaticMorning) {
		t.Errorf("Origin = %q, want %q", out.Origin, models.OriginAutomaticMorning)
	}
}

func TestHandleStartSession_AlreadyActive(t *testing.T) {
	s := NewServer(&fakeEngine{startErr: core.ErrAlreadyActive}, "test")

	result, _, err := s.handleStartSession(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("handler should return error results, not errors: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for already-active session")
	}
}

func TestHandleEndSession_NoActive(t *testing.T) {
	s := NewServer(&fakeEngine{endErr: core.ErrNoActiveSession}, "test")

	result, _, err := s.handleEndSession(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result when no session is active")
	}
}

func TestHandleLogSession(t *testing.T) {
	engine := &fakeEngine{}
	s := NewServer(engine, "test")

	result, out, err := s.handleLogSession(context.Background(), nil, logSessionInput{
		Date: "2026-08-29",
		From: "06:30",
		To:   "07:05",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected error result: %v", result.Content)
	}

	if out.DurationMinutes != 35 {
		t.Errorf("DurationMinutes = %d, want 35", out.DurationMinutes)
	}
	wantStart := time.Date(2026, 8, 29, 6, 30, 0, 0, time.Local)
	if !engine.lastManualStart.Equal(wantStart) {
		t.Errorf("engine received start %v, want %v", engine.lastManualStart, wantStart)
	}
}

func TestHandleLogSession_InvalidInput(t *testing.T) {
	s := NewServer(&fakeEngine{}, "test")

	cases := []logSessionInput{
		{Date: "29/08/2026", From: "06:30", To: "07:05"},
		{Date: "2026-08-29", From: "6.30am", To: "07:05"},
		{Date: "2026-08-29", From: "06:30", To: "late"},
	}
	for _, input := range cases {
		result, _, err := s.handleLogSession(context.Background(), nil, input)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", input, err)
		}
		if result == nil || !result.IsError {
			t.Errorf("expected error result for %+v", input)
		}
	}
}

func TestHandleLogSession_EngineRejects(t *testing.T) {
	s := NewServer(&fakeEngine{
		manualErr: &core.ValidationError{Field: "range", Reason: "end not after start"},
	}, "test")

	result, _, err := s.handleLogSession(context.Background(), nil, logSessionInput{
		Date: "2026-08-29",
		From: "07:05",
		To:   "06:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result when engine rejects the range")
	}
}

func TestHandleGetStats(t *testing.T) {
	s := NewServer(&fakeEngine{
		stats: models.Stats{DayStreak: 4, TodayMinutes: 30, TotalSessions: 12},
	}, "test")

	result, out, err := s.handleGetStats(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected error result: %v", result.Content)
	}
	if out.DayStreak != 4 || out.TodayMinutes != 30 || out.TotalSessions != 12 {
		t.Errorf("unexpected stats output: %+v", out)
	}
}

func TestHandleGetActiveSession(t *testing.T) {
	s := NewServer(&fakeEngine{}, "test")

	_, out, err := s.handleGetActiveSession(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Active {
		t.Error("expected no active session")
	}

	started := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	s = NewServer(&fakeEngine{
		active: &models.ActiveSessionSnapshot{
			ID:             "S-00002",
			StartedAt:      started,
			Origin:         models.OriginAutomaticEvening,
			InEveningPrime: true,
		},
	}, "test")

	_, out, err = s.handleGetActiveSession(context.Background(), nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Active || out.Session == nil {
		t.Fatal("expected active session in output")
	}
	if out.Session.ID != "S-00002" || !out.Session.InEveningPrime {
		t.Errorf("unexpected session output: %+v", out.Session)
	}
}

func TestHandleGetHistory(t *testing.T) {
	start := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	loc := &models.LatLon{Lat: 41.88, Lon: -87.63}
	engine := &fakeEngine{
		completed: []models.Session{
			{
				ID:                 "S-00003",
				StartedAt:          start,
				EndedAt:            start.Add(25 * time.Minute),
				DurationMinutes:    25,
				Origin:             models.OriginAutomaticMorning,
				Location:           loc,
				InMorningPrime:     true,
				QualifiesForStreak: true,
			},
			{
				ID:              "S-00002",
				StartedAt:       start.Add(-24 * time.Hour),
				EndedAt:         start.Add(-24*time.Hour + 5*time.Minute),
				DurationMinutes: 5,
				Origin:          models.OriginManual,
			},
		},
	}
	s := NewServer(engine, "test")

	_, out, err := s.handleGetHistory(context.Background(), nil, historyInput{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 2 || len(out.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got count=%d len=%d", out.Count, len(out.Sessions))
	}
	first := out.Sessions[0]
	if first.ID != "S-00003" || !first.QualifiesForStreak {
		t.Errorf("unexpected first session: %+v", first)
	}
	if first.Lat != 41.88 || first.Lon != -87.63 {
		t.Errorf("expected location to carry over, got lat=%v lon=%v", first.Lat, first.Lon)
	}

	_, out, err = s.handleGetHistory(context.Background(), nil, historyInput{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("expected limited history of 1, got %d", out.Count)
	}
}

func TestErrorResult(t *testing.T) {
	result := errorResult("boom")
	if !result.IsError {
		t.Error("expected IsError to be set")
	}
	text, ok := result.Content[0].(*gomcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if text.Text != "boom" {
		t.Errorf("text = %q, want boom", text.Text)
	}
}
