package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumen-labs/lumen/pkg/models"
	"github.com/spf13/cobra"
)

var dashboardRefresh time.Duration

// The engine exposes a pull-based GetStats; the dashboard chooses its own
// refresh cadence via the tick loop below.
type dashboardModel struct {
	width  int
	height int

	stats   *models.Stats
	active  *models.ActiveSessionSnapshot
	recent  []models.Session
	loading bool
	err     error
}

// dashDataMsg carries freshly loaded data back to the model.
type dashDataMsg struct {
	stats  *models.Stats
	active *models.ActiveSessionSnapshot
	recent []models.Session
	err    error
}

type dashTickMsg struct{}

var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("208")).
			Padding(0, 1)

	dashPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	dashStreakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dashActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dashDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dashErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func loadDashboardData() tea.Msg {
	ctx := context.Background()

	stats, err := Engine.GetStats(ctx)
	if err != nil {
		return dashDataMsg{err: err}
	}
	recent, err := Engine.GetSessionHistory(ctx, 5)
	if err != nil {
		return dashDataMsg{err: err}
	}
	return dashDataMsg{
		stats:  stats,
		active: Engine.GetActiveSession(),
		recent: recent,
	}
}

func dashTick() tea.Cmd {
	return tea.Tick(dashboardRefresh, func(time.Time) tea.Msg {
		return dashTickMsg{}
	})
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(loadDashboardData, dashTick())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case dashTickMsg:
		return m, tea.Batch(loadDashboardData, dashTick())

	case dashDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.active = msg.active
			m.recent = msg.recent
		}
		return m, nil
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(dashTitleStyle.Render("lumen dashboard"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(dashErrStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.stats == nil {
		b.WriteString("loading...\n")
		return b.String()
	}

	var stats strings.Builder
	fmt.Fprintf(&stats, "%s\n\n", dashStreakStyle.Render(fmt.Sprintf("%d day streak", m.stats.DayStreak)))
	fmt.Fprintf(&stats, "today      %3d min\n", m.stats.TodayMinutes)
	fmt.Fprintf(&stats, "this week  %3d min\n", m.stats.WeeklyMinutes)
	fmt.Fprintf(&stats, "last week  %3d min\n", m.stats.LastWeekMinutes)
	fmt.Fprintf(&stats, "sessions   %3d", m.stats.TotalSessions)
	b.WriteString(dashPanelStyle.Render(stats.String()))
	b.WriteString("\n")

	if m.active != nil {
		elapsed := time.Since(m.active.StartedAt).Round(time.Minute)
		b.WriteString(dashActiveStyle.Render(
			fmt.Sprintf("● session %s active (%s)", m.active.ID, elapsed)))
	} else {
		b.WriteString(dashDimStyle.Render("no active session"))
	}
	b.WriteString("\n\n")

	if len(m.recent) > 0 {
		var hist strings.Builder
		hist.WriteString("recent sessions\n")
		for _, s := range m.recent {
			fmt.Fprintf(&hist, "%s  %s  %3d min  %s\n",
				s.ID, s.StartedAt.Format("Jan 02 15:04"), s.DurationMinutes, windowLabel(s))
		}
		b.WriteString(dashPanelStyle.Render(strings.TrimRight(hist.String(), "\n")))
		b.WriteString("\n")
	}

	b.WriteString(dashDimStyle.Render("r refresh · q quit"))
	return b.String()
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live terminal dashboard of streak and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		p := tea.NewProgram(dashboardModel{loading: true}, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardRefresh, "refresh", 30*time.Second, "Refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}
