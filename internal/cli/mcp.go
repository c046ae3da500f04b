package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	lumenmcp "github.com/lumen-labs/lumen/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the Lumen MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lumen MCP server on stdio",
	Long: `Start the Lumen MCP server on stdio transport.

The server exposes the session engine as MCP tools that assistants can
call: start_session, end_session, log_session, get_stats,
get_active_session, get_history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("session engine not initialized")
		}

		srv := lumenmcp.NewServer(Engine, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
