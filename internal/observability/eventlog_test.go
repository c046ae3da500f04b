package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEventLog_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	events := []Event{
		{
			Time: now,
			Type: "session.started",
			Data: map[string]any{"session_id": "S-00001", "origin": "automatic_morning"},
		},
		{
			Time: now.Add(20 * time.Minute),
			Type: "session.completed",
			Data: map[string]any{"session_id": "S-00001", "minutes": 20, "qualifies": true},
		},
	}

	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
	if result[0].Type != "session.started" {
		t.Errorf("expected type session.started, got %s", result[0].Type)
	}
	if result[1].Data["session_id"] != "S-00001" {
		t.Errorf("expected session_id S-00001, got %v", result[1].Data["session_id"])
	}
}

func TestEventLog_FilterByTypeAndTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	base := time.Now().UTC()
	for i, typ := range []string{"session.started", "session.completed", "storage.retry"} {
		if err := log.Write(Event{Time: base.Add(time.Duration(i) * time.Minute), Type: typ}); err != nil {
			t.Fatal(err)
		}
	}

	byType, err := log.Read(EventFilter{Type: "storage.retry"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byType) != 1 {
		t.Errorf("expected 1 storage.retry event, got %d", len(byType))
	}

	since := base.Add(30 * time.Second)
	byTime, err := log.Read(EventFilter{Since: &since})
	if err != nil {
		t.Fatal(err)
	}
	if len(byTime) != 2 {
		t.Errorf("expected 2 events after cutoff, got %d", len(byTime))
	}
}

func TestEventLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte("not json\n{\"type\":\"session.started\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading with malformed lines: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected the malformed line to be skipped, got %d events", len(events))
	}
}

func TestEventLog_ReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "events.jsonl")
	log := &jsonlEventLog{path: path}

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("missing file must read as empty: %v", err)
	}
	if events != nil {
		t.Errorf("expected nil events, got %v", events)
	}
}
