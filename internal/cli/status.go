package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session, if any",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		snap := Engine.GetActiveSession()
		if snap == nil {
			fmt.Println("No active session.")
			return nil
		}

		elapsed := time.Since(snap.StartedAt).Round(time.Minute)
		fmt.Printf("Session %s active since %s (%s elapsed)\n",
			snap.ID, snap.StartedAt.Format("15:04"), elapsed)
		switch {
		case snap.InMorningPrime:
			fmt.Println("Started in the morning prime window.")
		case snap.InEveningPrime:
			fmt.Println("Started in the evening prime window.")
		default:
			fmt.Println("Started outside the prime windows.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
