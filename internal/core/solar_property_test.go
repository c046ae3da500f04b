package core

import (
	"testing"
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
	"pgregory.net/rapid"
)

// Property: ComputeWindows is deterministic and its four boundaries are
// strictly ordered for any latitude input.
func TestProperty_SolarWindowOrdering(t *testing.T) {
	calc := defaultCalc()

	rapid.Check(t, func(rt *rapid.T) {
		lat := rapid.Float64Range(-90, 90).Draw(rt, "lat")
		lon := rapid.Float64Range(-180, 180).Draw(rt, "lon")
		day := rapid.IntRange(0, 364).Draw(rt, "day")

		date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		loc := &models.LatLon{Lat: lat, Lon: lon}

		w1 := calc.ComputeWindows(loc, models.LatLon{}, date)
		w2 := calc.ComputeWindows(loc, models.LatLon{}, date)

		if w1 != w2 {
			rt.Fatalf("not deterministic: %+v vs %+v", w1, w2)
		}
		if !(w1.MorningStart < w1.MorningEnd) {
			rt.Fatalf("morning window inverted: %+v", w1)
		}
		if !(w1.MorningEnd < w1.EveningStart) {
			rt.Fatalf("morning overlaps evening: %+v", w1)
		}
		if !(w1.EveningStart < w1.EveningEnd) {
			rt.Fatalf("evening window inverted: %+v", w1)
		}
		if w1.MorningStart < 0 || w1.EveningEnd > 24.5 {
			rt.Fatalf("window outside plausible day bounds: %+v", w1)
		}
	})
}

// Property: window widths depend only on the configured offsets, never on
// the latitude.
func TestProperty_SolarWindowWidths(t *testing.T) {
	cfg := DefaultConfig()
	calc := NewSolarCalculator(cfg.Solar, cfg.Windows)

	wantMorning := float64(cfg.Windows.MorningBeforeSunrise+cfg.Windows.MorningAfterSunrise) / 60
	wantEvening := float64(cfg.Windows.EveningBeforeSunset+cfg.Windows.EveningAfterSunset) / 60

	rapid.Check(t, func(rt *rapid.T) {
		lat := rapid.Float64Range(-90, 90).Draw(rt, "lat")
		date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		w := calc.ComputeWindows(&models.LatLon{Lat: lat}, models.LatLon{}, date)

		if got := w.MorningEnd - w.MorningStart; !almostEqual(got, wantMorning) {
			rt.Fatalf("morning width %v, want %v", got, wantMorning)
		}
		if got := w.EveningEnd - w.EveningStart; !almostEqual(got, wantEvening) {
			rt.Fatalf("evening width %v, want %v", got, wantEvening)
		}
	})
}
