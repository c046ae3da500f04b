package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
)

func TestAtTimeOfDay(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	got, err := atTimeOfDay(day, "06:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 29, 6, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("atTimeOfDay = %v, want %v", got, want)
	}

	if _, err := atTimeOfDay(day, "25:00"); err == nil {
		t.Error("expected error for out-of-range hour")
	}
	if _, err := atTimeOfDay(day, "morning"); err == nil {
		t.Error("expected error for non-clock string")
	}
}

func TestLogCommand_ParsesRange(t *testing.T) {
	origEngine := Engine
	origDate, origFrom, origTo := logDate, logFrom, logTo
	defer func() {
		Engine = origEngine
		logDate, logFrom, logTo = origDate, origFrom, origTo
	}()

	var gotStart, gotEnd time.Time
	Engine = &engineMock{
		addManualFn: func(ctx context.Context, start, end time.Time) (*models.Session, error) {
			gotStart, gotEnd = start, end
			return &models.Session{ID: "S-00003", StartedAt: start, EndedAt: end, DurationMinutes: 35}, nil
		},
	}
	logDate = "2026-08-29"
	logFrom = "06:30"
	logTo = "07:05"

	if err := logCmd.RunE(logCmd, []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, 8, 29, 6, 30, 0, 0, time.Local)
	wantEnd := time.Date(2026, 8, 29, 7, 5, 0, 0, time.Local)
	if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantEnd) {
		t.Errorf("engine received %v-%v, want %v-%v", gotStart, gotEnd, wantStart, wantEnd)
	}
}

func TestLogCommand_BadDate(t *testing.T) {
	origEngine := Engine
	origDate, origFrom, origTo := logDate, logFrom, logTo
	defer func() {
		Engine = origEngine
		logDate, logFrom, logTo = origDate, origFrom, origTo
	}()

	Engine = &engineMock{}
	logDate = "29-08-2026"
	logFrom = "06:30"
	logTo = "07:05"

	err := logCmd.RunE(logCmd, []string{})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !strings.Contains(err.Error(), "--date") {
		t.Errorf("expected --date in error, got: %v", err)
	}
}
