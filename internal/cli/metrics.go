package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display usage metrics from the event log",
	Long: `Display aggregated usage metrics derived from the event log: sessions
started and completed, manual entries, recorded minutes, and storage
incidents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Metrics since %s:\n", metricsSince)
		fmt.Printf("  sessions started:   %d\n", metrics.SessionsStarted)
		fmt.Printf("  sessions completed: %d\n", metrics.SessionsCompleted)
		fmt.Printf("  manual entries:     %d\n", metrics.ManualEntries)
		fmt.Printf("  minutes recorded:   %d\n", metrics.MinutesRecorded)
		fmt.Printf("  qualifying:         %d\n", metrics.QualifyingCount)
		fmt.Printf("  corrupt snapshots:  %d\n", metrics.CorruptSnapshots)
		fmt.Printf("  storage retries:    %d\n", metrics.StorageRetries)
		return nil
	},
}

// parseSinceDuration converts shorthand like "7d", "24h", "30d" into an
// absolute time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day count %q", s)
		}
		return time.Now().AddDate(0, 0, -days), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	return time.Now().Add(-d), nil
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
