package cli

import (
	"errors"
	"fmt"

	"github.com/lumen-labs/lumen/internal/core"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the active light session",
	Long: `End the running light exposure session.

The session duration is folded into today's totals (prime-window minutes
only) and the streak is recomputed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		session, err := Engine.EndSession(cmd.Context())
		if err != nil {
			if errors.Is(err, core.ErrNoActiveSession) {
				return fmt.Errorf("no session is running; start one with 'lumen start'")
			}
			if core.IsStorage(err) {
				return fmt.Errorf("saving session failed: %w (run 'lumen stop' again to retry)", err)
			}
			return fmt.Errorf("ending session: %w", err)
		}

		fmt.Printf("Session %s: %d minutes", session.ID, session.DurationMinutes)
		if session.QualifiesForStreak {
			fmt.Println(" — qualifies for your streak!")
		} else if session.InMorningPrime || session.InEveningPrime {
			fmt.Println(" — in a prime window, but under the qualifying minimum.")
		} else {
			fmt.Println(" — outside the prime windows.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
