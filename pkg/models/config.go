package models

import "time"

// WindowPolicy names the prime-window offsets instead of hard-coding them.
// All offsets are minutes relative to the approximated sunrise/sunset.
type WindowPolicy struct {
	MorningBeforeSunrise int `yaml:"morning_before_sunrise" mapstructure:"morning_before_sunrise"`
	MorningAfterSunrise  int `yaml:"morning_after_sunrise" mapstructure:"morning_after_sunrise"`
	EveningBeforeSunset  int `yaml:"evening_before_sunset" mapstructure:"evening_before_sunset"`
	EveningAfterSunset   int `yaml:"evening_after_sunset" mapstructure:"evening_after_sunset"`
}

// SolarConfig parameterizes the coarse sunrise/sunset approximation:
// a baseline hour plus a small linear correction proportional to the
// distance from a reference latitude.
type SolarConfig struct {
	SunriseBaseHour float64 `yaml:"sunrise_base_hour" mapstructure:"sunrise_base_hour"`
	SunsetBaseHour  float64 `yaml:"sunset_base_hour" mapstructure:"sunset_base_hour"`
	ReferenceLat    float64 `yaml:"reference_lat" mapstructure:"reference_lat"`
	HoursPerDegree  float64 `yaml:"hours_per_degree" mapstructure:"hours_per_degree"`
}

// Config is the merged engine configuration loaded from .lumenrc.
type Config struct {
	Windows WindowPolicy `yaml:"windows"`
	Solar   SolarConfig  `yaml:"solar"`

	// FallbackLocation is used when no location provider position is
	// available.
	FallbackLocation LatLon `yaml:"fallback_location"`
	// HomeLocation, when set, pins the location provider to a fixed
	// coordinate.
	HomeLocation *LatLon `yaml:"home_location,omitempty"`

	// MinQualifyingMinutes is the minimum session duration for a session
	// to count toward the streak.
	MinQualifyingMinutes int `yaml:"min_qualifying_minutes"`
	// StreakHorizonDays bounds the backward streak walk.
	StreakHorizonDays int `yaml:"streak_horizon_days"`

	// StorageTimeout bounds each durable-store call so a slow medium
	// surfaces as a retryable failure rather than a hang.
	StorageTimeout time.Duration `yaml:"storage_timeout"`
}
