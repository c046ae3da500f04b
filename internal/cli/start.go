package cli

import (
	"errors"
	"fmt"

	"github.com/lumen-labs/lumen/internal/core"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start tracking an outdoor light session",
	Long: `Start tracking a light exposure session at the current instant.

The session is classified against today's prime windows at start time and
the classification is frozen: it will not change even if the window
configuration does. Only one session can be active at a time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		snap, err := Engine.StartAutomaticSession(cmd.Context())
		if err != nil {
			if errors.Is(err, core.ErrAlreadyActive) {
				return fmt.Errorf("a session is already running; stop it first with 'lumen stop'")
			}
			return fmt.Errorf("starting session: %w", err)
		}

		fmt.Printf("Session %s started at %s\n", snap.ID, snap.StartedAt.Format("15:04"))
		switch {
		case snap.InMorningPrime:
			fmt.Println("You're in the morning prime window — this session counts.")
		case snap.InEveningPrime:
			fmt.Println("You're in the evening prime window — this session counts.")
		default:
			fmt.Println("Outside the prime windows — tracked, but won't count toward your streak.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
