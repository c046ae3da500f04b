package models

// DailyAggregate is the per-day exposure total derived from qualifying-window
// sessions. Under the current policy PrimeMinutes always equals TotalMinutes;
// the field is kept separate for forward compatibility with non-prime
// tracking.
type DailyAggregate struct {
	Day          string `yaml:"day"`
	TotalMinutes int    `yaml:"total_minutes"`
	PrimeMinutes int    `yaml:"prime_minutes"`
	// Qualifying records whether at least one session that day qualifies
	// for the streak. The streak walk reads this instead of re-scanning
	// session lists.
	Qualifying bool `yaml:"qualifying"`
}

// SolarWindows holds prime-window boundaries for one day, expressed as
// fractional hours of day (0-24).
type SolarWindows struct {
	MorningStart float64 `json:"morning_start"`
	MorningEnd   float64 `json:"morning_end"`
	EveningStart float64 `json:"evening_start"`
	EveningEnd   float64 `json:"evening_end"`
}

// Stats is the read-only projection served to the UI layer.
type Stats struct {
	DayStreak             int `json:"day_streak"`
	TodayMinutes          int `json:"today_minutes"`
	WeeklyMinutes         int `json:"weekly_minutes"`
	LastWeekMinutes       int `json:"last_week_minutes"`
	YesterdayPrimeMinutes int `json:"yesterday_prime_minutes"`
	TotalSessions         int `json:"total_sessions"`
}
