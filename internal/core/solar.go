package core

import (
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
)

// Sunrise and sunset approximations are clamped to these bounds so the
// window ordering morningStart < morningEnd < eveningStart < eveningEnd
// holds for any latitude input.
const (
	minSunriseHour = 4.5
	maxSunriseHour = 8.5
	minSunsetHour  = 16.5
	maxSunsetHour  = 21.0
)

// SolarCalculator derives prime-light windows from a location and a date.
// It is pure: no I/O, no side effects, same output for the same inputs.
//
// The sunrise/sunset estimate is intentionally coarse: a baseline hour plus
// a linear correction proportional to the distance from a reference
// latitude. The date parameter is accepted so a seasonal correction can be
// added later without breaking callers.
type SolarCalculator struct {
	solar   models.SolarConfig
	windows models.WindowPolicy
}

// NewSolarCalculator creates a SolarCalculator with the given approximation
// parameters and window policy.
func NewSolarCalculator(solar models.SolarConfig, windows models.WindowPolicy) *SolarCalculator {
	return &SolarCalculator{solar: solar, windows: windows}
}

// ComputeWindows returns the morning and evening prime-window boundaries
// for the given location and date, as fractional hours of day. A nil
// location falls back to the provided fallback coordinate.
func (c *SolarCalculator) ComputeWindows(loc *models.LatLon, fallback models.LatLon, date time.Time) models.SolarWindows {
	lat := fallback.Lat
	if loc != nil {
		lat = loc.Lat
	}

	offset := c.solar.HoursPerDegree * (lat - c.solar.ReferenceLat)
	sunrise := clamp(c.solar.SunriseBaseHour+offset, minSunriseHour, maxSunriseHour)
	sunset := clamp(c.solar.SunsetBaseHour-offset, minSunsetHour, maxSunsetHour)

	return models.SolarWindows{
		MorningStart: sunrise - float64(c.windows.MorningBeforeSunrise)/60,
		MorningEnd:   sunrise + float64(c.windows.MorningAfterSunrise)/60,
		EveningStart: sunset - float64(c.windows.EveningBeforeSunset)/60,
		EveningEnd:   sunset + float64(c.windows.EveningAfterSunset)/60,
	}
}

// Classify reports whether the fractional hour falls inside the morning or
// evening prime window. Intervals are half-open: [start, end).
func Classify(w models.SolarWindows, hour float64) (inMorning, inEvening bool) {
	inMorning = hour >= w.MorningStart && hour < w.MorningEnd
	inEvening = hour >= w.EveningStart && hour < w.EveningEnd
	return inMorning, inEvening
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
