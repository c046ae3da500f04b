package core

import (
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
)

// Clock supplies the current time. Injected so the engine can be driven
// deterministically in tests without a real device clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// LocationProvider supplies the user's current coordinates. The second
// return value is false when no position is available; callers fall back to
// a configured location silently (unavailability is not an error).
type LocationProvider interface {
	Current() (models.LatLon, bool)
}

// StaticLocation is a LocationProvider pinned to one coordinate, used when
// the host has no geolocation sensor or the user configured a fixed home
// position.
type StaticLocation struct {
	Pos models.LatLon
}

// Current returns the configured position.
func (s StaticLocation) Current() (models.LatLon, bool) {
	return s.Pos, true
}

// NoLocation is a LocationProvider that never has a position.
type NoLocation struct{}

// Current reports no position available.
func (NoLocation) Current() (models.LatLon, bool) {
	return models.LatLon{}, false
}

// DayKey formats an instant as the calendar-date key used throughout the
// persisted state layout. Keys derived this way are deterministic, so
// re-reading after a restart reconstructs identical state.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HourOfDay converts an instant to fractional hours of day (0-24), the unit
// the solar windows are expressed in.
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}
