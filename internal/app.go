// Package internal provides the App struct that wires all components of
// Lumen together and initializes the CLI layer.
package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumen-labs/lumen/internal/cli"
	"github.com/lumen-labs/lumen/internal/core"
	"github.com/lumen-labs/lumen/internal/observability"
	"github.com/lumen-labs/lumen/internal/storage"
	"github.com/lumen-labs/lumen/pkg/models"
)

// App holds all service dependencies for Lumen.
type App struct {
	BasePath string
	Config   *models.Config

	// Storage layer
	KV         storage.KV
	Sessions   storage.SessionStore
	Aggregates storage.AggregateStore
	Snapshots  storage.SnapshotStore
	Streaks    storage.StreakStore

	// Core services
	Solar  *core.SolarCalculator
	Engine core.SessionEngine

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components. basePath is the directory where
// configuration and durable state live (typically ~/.lumen or a directory
// containing .lumenrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	cfg, err := core.NewConfigManager(basePath).Load()
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}
	app.Config = cfg

	// --- Storage layer ---
	app.KV = storage.NewFileKV(filepath.Join(basePath, "data"))
	app.Sessions = storage.NewSessionStore(app.KV)
	app.Aggregates = storage.NewAggregateStore(app.KV)
	app.Snapshots = storage.NewSnapshotStore(app.KV)
	app.Streaks = storage.NewStreakStore(app.KV)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".lumen_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without observability if the log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.Solar = core.NewSolarCalculator(cfg.Solar, cfg.Windows)

	var location core.LocationProvider = core.NoLocation{}
	if cfg.HomeLocation != nil {
		location = core.StaticLocation{Pos: *cfg.HomeLocation}
	}

	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLoggerAdapter{log: app.EventLog}
	}

	app.Engine = core.NewSessionEngine(core.EngineDeps{
		Config:     cfg,
		Solar:      app.Solar,
		Lifecycle:  core.NewLifecycle(app.Snapshots),
		Sessions:   app.Sessions,
		Aggregates: app.Aggregates,
		Streaks:    app.Streaks,
		Clock:      core.SystemClock{},
		Location:   location,
		Events:     events,
	})

	// Reload any persisted Active snapshot from a previous process.
	if err := app.Engine.Resume(context.Background()); err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}

	cli.SetDeps(app.Engine, app.MetricsCalc)
	return app, nil
}

// ResolveBasePath determines where Lumen state lives: LUMEN_HOME if set,
// else the nearest ancestor directory containing .lumenrc.yaml, else
// ~/.lumen.
func ResolveBasePath() string {
	if home := os.Getenv("LUMEN_HOME"); home != "" {
		return home
	}

	dir, err := os.Getwd()
	if err == nil {
		for {
			if _, err := os.Stat(filepath.Join(dir, ".lumenrc.yaml")); err == nil {
				return dir
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		cwd, _ := os.Getwd()
		return cwd
	}
	return filepath.Join(home, ".lumen")
}

// --- Adapters ---

// eventLoggerAdapter adapts observability.EventLog to core.EventLogger.
type eventLoggerAdapter struct {
	log observability.EventLog
}

func (a *eventLoggerAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}
