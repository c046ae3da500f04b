package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsJSON bool

var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("208")).
			Padding(0, 1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak and exposure totals",
	Long: `Show the current streak, today's prime-window minutes, this week's and
last week's totals, yesterday's prime minutes, and the session count.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		stats, err := Engine.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("computing stats: %w", err)
		}

		if statsJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting stats as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s\n\n",
			streakStyle.Render(fmt.Sprintf("%d day streak", stats.DayStreak)),
			labelStyle.Render(fmt.Sprintf("(%d sessions total)", stats.TotalSessions)))
		fmt.Fprintf(&b, "%s %d min\n", labelStyle.Render("Today:         "), stats.TodayMinutes)
		fmt.Fprintf(&b, "%s %d min\n", labelStyle.Render("Yesterday prime:"), stats.YesterdayPrimeMinutes)
		fmt.Fprintf(&b, "%s %d min\n", labelStyle.Render("This week:     "), stats.WeeklyMinutes)
		fmt.Fprintf(&b, "%s %d min", labelStyle.Render("Last week:     "), stats.LastWeekMinutes)

		fmt.Println(statsTitleStyle.Render("lumen"))
		fmt.Println(statsBoxStyle.Render(b.String()))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}
