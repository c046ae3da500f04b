package core

import "time"

// ComputeStreak counts consecutive calendar days, walking backward from
// today, on which the predicate reports at least one qualifying session.
//
// Today itself is exempt from breaking the streak: a day still in progress
// without a session yet does not reset the count. Every earlier day without
// a qualifying session stops the walk. The walk is bounded by horizonDays.
//
// The predicate is expected to be a pure lookup over a snapshot of the
// qualifying-day data; ComputeStreak performs no I/O.
func ComputeStreak(qualifies func(day string) bool, today time.Time, horizonDays int) int {
	streak := 0
	if qualifies(DayKey(today)) {
		streak = 1
	}

	for i := 1; i < horizonDays; i++ {
		day := DayKey(today.AddDate(0, 0, -i))
		if !qualifies(day) {
			break
		}
		streak++
	}
	return streak
}
