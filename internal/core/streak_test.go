package core

import (
	"testing"
	"time"
)

func predFromDays(days ...string) func(string) bool {
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return func(day string) bool {
		_, ok := set[day]
		return ok
	}
}

func TestComputeStreak(t *testing.T) {
	today := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		days []string
		want int
	}{
		{"no sessions at all", nil, 0},
		{"only today", []string{"2026-08-28"}, 1},
		{"today with gap before yesterday", []string{"2026-08-28", "2026-08-26"}, 1},
		{"today and yesterday", []string{"2026-08-28", "2026-08-27"}, 2},
		{"yesterday only, today still in progress", []string{"2026-08-27"}, 1},
		{"three days ending yesterday", []string{"2026-08-27", "2026-08-26", "2026-08-25"}, 3},
		{"broken two days ago", []string{"2026-08-28", "2026-08-27", "2026-08-25"}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStreak(predFromDays(tc.days...), today, 365)
			if got != tc.want {
				t.Errorf("expected streak %d, got %d", tc.want, got)
			}
		})
	}
}

func TestComputeStreak_HorizonBound(t *testing.T) {
	today := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// Every day qualifies; the walk must stop at the horizon.
	always := func(string) bool { return true }
	if got := ComputeStreak(always, today, 365); got != 365 {
		t.Errorf("expected streak capped at 365, got %d", got)
	}
	if got := ComputeStreak(always, today, 30); got != 30 {
		t.Errorf("expected streak capped at 30, got %d", got)
	}
}
