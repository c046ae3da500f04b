package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	logDate string
	logFrom string
	logTo   string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a past light session manually",
	Long: `Record a completed light exposure session with an explicit time range.

The session is classified against the prime windows of its own date and
start time, not the current moment, and goes through the same bookkeeping
as a tracked session.

Example:
  lumen log --date 2026-08-29 --from 06:30 --to 07:05`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		day, err := time.ParseInLocation("2006-01-02", logDate, time.Local)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		start, err := atTimeOfDay(day, logFrom)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
		end, err := atTimeOfDay(day, logTo)
		if err != nil {
			return fmt.Errorf("parsing --to: %w", err)
		}

		session, err := Engine.AddManualSession(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("logging session: %w", err)
		}

		fmt.Printf("Logged session %s: %s %s-%s, %d minutes",
			session.ID, logDate, logFrom, logTo, session.DurationMinutes)
		if session.QualifiesForStreak {
			fmt.Println(" — qualifies for your streak!")
		} else {
			fmt.Println()
		}
		return nil
	},
}

// atTimeOfDay combines a calendar day with an HH:MM clock string.
func atTimeOfDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Session date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logFrom, "from", "", "Start time (HH:MM)")
	logCmd.Flags().StringVar(&logTo, "to", "", "End time (HH:MM)")
	_ = logCmd.MarkFlagRequired("date")
	_ = logCmd.MarkFlagRequired("from")
	_ = logCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(logCmd)
}
