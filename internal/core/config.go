// Package core contains the business logic for Lumen: solar window
// computation, session lifecycle management, streak calculation, and the
// session engine that orchestrates them.
package core

import (
	"fmt"
	"time"

	"github.com/lumen-labs/lumen/pkg/models"
	"github.com/spf13/viper"
)

// ConfigManager loads and validates the engine configuration.
type ConfigManager interface {
	Load() (*models.Config, error)
	Validate(cfg *models.Config) error
}

// viperConfigManager implements ConfigManager using Viper to read the
// .lumenrc YAML file.
type viperConfigManager struct {
	// basePath is the directory where .lumenrc resides.
	basePath string
}

// NewConfigManager creates a ConfigManager reading configuration relative
// to basePath.
func NewConfigManager(basePath string) ConfigManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with the canonical defaults.
// The window offsets default to the recurring [-15m,+135m] morning and
// [-120m,+15m] evening variant.
func DefaultConfig() *models.Config {
	return &models.Config{
		Windows: models.WindowPolicy{
			MorningBeforeSunrise: 15,
			MorningAfterSunrise:  135,
			EveningBeforeSunset:  120,
			EveningAfterSunset:   15,
		},
		Solar: models.SolarConfig{
			SunriseBaseHour: 6.0,
			SunsetBaseHour:  19.5,
			ReferenceLat:    41.8,
			HoursPerDegree:  0.05,
		},
		FallbackLocation:     models.LatLon{Lat: 41.8781, Lon: -87.6298},
		MinQualifyingMinutes: 10,
		StreakHorizonDays:    365,
		StorageTimeout:       5 * time.Second,
	}
}

// Load reads .lumenrc from the base path. A missing file yields defaults.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(".lumenrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Viper defaults so missing keys fall back gracefully.
	v.SetDefault("windows.morning_before_sunrise", cfg.Windows.MorningBeforeSunrise)
	v.SetDefault("windows.morning_after_sunrise", cfg.Windows.MorningAfterSunrise)
	v.SetDefault("windows.evening_before_sunset", cfg.Windows.EveningBeforeSunset)
	v.SetDefault("windows.evening_after_sunset", cfg.Windows.EveningAfterSunset)
	v.SetDefault("solar.sunrise_base_hour", cfg.Solar.SunriseBaseHour)
	v.SetDefault("solar.sunset_base_hour", cfg.Solar.SunsetBaseHour)
	v.SetDefault("solar.reference_lat", cfg.Solar.ReferenceLat)
	v.SetDefault("solar.hours_per_degree", cfg.Solar.HoursPerDegree)
	v.SetDefault("location.fallback_lat", cfg.FallbackLocation.Lat)
	v.SetDefault("location.fallback_lon", cfg.FallbackLocation.Lon)
	v.SetDefault("streak.min_minutes", cfg.MinQualifyingMinutes)
	v.SetDefault("streak.horizon_days", cfg.StreakHorizonDays)
	v.SetDefault("storage.timeout", cfg.StorageTimeout.String())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .lumenrc: %w", err)
	}

	cfg.Windows.MorningBeforeSunrise = v.GetInt("windows.morning_before_sunrise")
	cfg.Windows.MorningAfterSunrise = v.GetInt("windows.morning_after_sunrise")
	cfg.Windows.EveningBeforeSunset = v.GetInt("windows.evening_before_sunset")
	cfg.Windows.EveningAfterSunset = v.GetInt("windows.evening_after_sunset")
	cfg.Solar.SunriseBaseHour = v.GetFloat64("solar.sunrise_base_hour")
	cfg.Solar.SunsetBaseHour = v.GetFloat64("solar.sunset_base_hour")
	cfg.Solar.ReferenceLat = v.GetFloat64("solar.reference_lat")
	cfg.Solar.HoursPerDegree = v.GetFloat64("solar.hours_per_degree")
	cfg.FallbackLocation.Lat = v.GetFloat64("location.fallback_lat")
	cfg.FallbackLocation.Lon = v.GetFloat64("location.fallback_lon")
	cfg.MinQualifyingMinutes = v.GetInt("streak.min_minutes")
	cfg.StreakHorizonDays = v.GetInt("streak.horizon_days")

	if v.IsSet("location.home_lat") && v.IsSet("location.home_lon") {
		cfg.HomeLocation = &models.LatLon{
			Lat: v.GetFloat64("location.home_lat"),
			Lon: v.GetFloat64("location.home_lon"),
		}
	}

	timeout, err := time.ParseDuration(v.GetString("storage.timeout"))
	if err != nil {
		return nil, fmt.Errorf("parsing storage.timeout: %w", err)
	}
	cfg.StorageTimeout = timeout

	if err := cm.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (cm *viperConfigManager) Validate(cfg *models.Config) error {
	if cfg.Windows.MorningBeforeSunrise < 0 || cfg.Windows.MorningAfterSunrise <= 0 {
		return fmt.Errorf("validating config: morning window offsets must be positive")
	}
	if cfg.Windows.EveningBeforeSunset <= 0 || cfg.Windows.EveningAfterSunset < 0 {
		return fmt.Errorf("validating config: evening window offsets must be positive")
	}
	if cfg.MinQualifyingMinutes < 1 {
		return fmt.Errorf("validating config: streak.min_minutes must be at least 1")
	}
	if cfg.StreakHorizonDays < 1 {
		return fmt.Errorf("validating config: streak.horizon_days must be at least 1")
	}
	if cfg.StorageTimeout <= 0 {
		return fmt.Errorf("validating config: storage.timeout must be positive")
	}
	return nil
}
