package cli

import (
	"fmt"

	"github.com/lumen-labs/lumen/internal/core"
	"github.com/lumen-labs/lumen/internal/observability"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Engine and MetricsCalc are injected by the app wiring before Execute runs.
var (
	Engine      core.SessionEngine
	MetricsCalc observability.MetricsCalculator
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// SetDeps injects the service dependencies used by the commands.
func SetDeps(engine core.SessionEngine, metricsCalc observability.MetricsCalculator) {
	Engine = engine
	MetricsCalc = metricsCalc
}

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen - outdoor light exposure and circadian streak tracker",
	Long: `Lumen tracks outdoor light exposure relative to sunrise and sunset,
classifies each session against the morning and evening prime windows,
aggregates exposure into daily and weekly totals, and keeps a streak of
consecutive qualifying days.

Start a session when you step outside, stop it when you come back in, or
log a past session manually with an explicit time range.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lumen %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
