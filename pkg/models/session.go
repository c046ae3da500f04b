package models

import "time"

// SessionOrigin identifies how a session entered the system.
type SessionOrigin string

const (
	// OriginAutomaticMorning marks a tracked session started around the
	// morning prime window.
	OriginAutomaticMorning SessionOrigin = "automatic_morning"
	// OriginAutomaticEvening marks a tracked session started around the
	// evening prime window.
	OriginAutomaticEvening SessionOrigin = "automatic_evening"
	// OriginManual marks a session entered by the user after the fact with
	// an explicit date and time range.
	OriginManual SessionOrigin = "manual"
)

// LatLon is a geographic coordinate snapshot.
type LatLon struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Session represents a completed outdoor-light exposure session. The prime
// classification flags are computed once when the session is finalized and
// never recomputed, even if the window algorithm changes later.
type Session struct {
	ID                 string        `yaml:"id"`
	StartedAt          time.Time     `yaml:"started_at"`
	EndedAt            time.Time     `yaml:"ended_at"`
	DurationMinutes    int           `yaml:"duration_minutes"`
	Origin             SessionOrigin `yaml:"origin"`
	Location           *LatLon       `yaml:"location,omitempty"`
	InMorningPrime     bool          `yaml:"in_morning_prime"`
	InEveningPrime     bool          `yaml:"in_evening_prime"`
	QualifiesForStreak bool          `yaml:"qualifies_for_streak"`
}

// ActiveSessionSnapshot mirrors a Session without an end time. Its presence
// in durable storage is the sole source of truth for "a session is running",
// and it must be reconstructable after an unexpected process termination.
type ActiveSessionSnapshot struct {
	ID             string        `yaml:"id"`
	StartedAt      time.Time     `yaml:"started_at"`
	Origin         SessionOrigin `yaml:"origin"`
	Location       *LatLon       `yaml:"location,omitempty"`
	InMorningPrime bool          `yaml:"in_morning_prime"`
	InEveningPrime bool          `yaml:"in_evening_prime"`
}

// DayList is the persisted list of completed sessions for one calendar day.
type DayList struct {
	Day      string    `yaml:"day"`
	Sessions []Session `yaml:"sessions"`
}
