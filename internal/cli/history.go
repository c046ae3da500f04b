package cli

import (
	"fmt"

	"github.com/lumen-labs/lumen/pkg/models"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		sessions, err := Engine.GetSessionHistory(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("fetching history: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-8s %-10s %-11s %-5s %-7s %s\n", "ID", "DATE", "START-END", "MIN", "WINDOW", "STREAK")
		for _, s := range sessions {
			fmt.Printf("%-8s %-10s %s-%s %5d %-7s %s\n",
				s.ID,
				s.StartedAt.Format("2006-01-02"),
				s.StartedAt.Format("15:04"),
				s.EndedAt.Format("15:04"),
				s.DurationMinutes,
				windowLabel(s),
				qualifyLabel(s))
		}
		return nil
	},
}

func windowLabel(s models.Session) string {
	switch {
	case s.InMorningPrime:
		return "morning"
	case s.InEveningPrime:
		return "evening"
	default:
		return "-"
	}
}

func qualifyLabel(s models.Session) string {
	if s.QualifiesForStreak {
		return "yes"
	}
	return "no"
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of sessions to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
