package observability

import (
	"fmt"
	"time"
)

// Metrics holds usage metrics derived from the event log.
type Metrics struct {
	SessionsStarted   int        `json:"sessions_started"`
	SessionsCompleted int        `json:"sessions_completed"`
	ManualEntries     int        `json:"manual_entries"`
	MinutesRecorded   int        `json:"minutes_recorded"`
	QualifyingCount   int        `json:"qualifying_count"`
	CorruptSnapshots  int        `json:"corrupt_snapshots"`
	StorageRetries    int        `json:"storage_retries"`
	EventCount        int        `json:"event_count"`
	OldestEvent       *time.Time `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventCount: len(events)}

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "session.started":
			m.SessionsStarted++
		case "session.completed", "session.manual":
			if event.Type == "session.manual" {
				m.ManualEntries++
			} else {
				m.SessionsCompleted++
			}
			if minutes, ok := event.Data["minutes"].(float64); ok {
				m.MinutesRecorded += int(minutes)
			}
			if q, ok := event.Data["qualifies"].(bool); ok && q {
				m.QualifyingCount++
			}
		case "snapshot.corrupt":
			m.CorruptSnapshots++
		case "storage.retry":
			m.StorageRetries++
		}
	}

	return m, nil
}
