package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var windowsDate string

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Show the prime light windows for a date",
	Long: `Show the computed morning and evening prime windows for a date
(default today) at the current or fallback location.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		date := time.Now()
		if windowsDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", windowsDate, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			date = parsed
		}

		w := Engine.WindowsFor(date)
		fmt.Printf("Prime windows for %s:\n", date.Format("2006-01-02"))
		fmt.Printf("  morning: %s - %s\n", formatHour(w.MorningStart), formatHour(w.MorningEnd))
		fmt.Printf("  evening: %s - %s\n", formatHour(w.EveningStart), formatHour(w.EveningEnd))
		return nil
	},
}

// formatHour renders a fractional hour of day as HH:MM.
func formatHour(h float64) string {
	total := int(h*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func init() {
	windowsCmd.Flags().StringVar(&windowsDate, "date", "", "Date to compute windows for (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(windowsCmd)
}
