package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var serveFlags settingsFlags

// serveCmd starts the MCP server on the configured transport.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CourtListener MCP server",
	Long: `Starts the MCP server and serves the search, get and citation tool
groups on the configured transport.

Transports:
  stdio            JSON-RPC over standard input and output (default).
                   The server stops when standard input is closed.
  streamable-http  Streamable HTTP on HOST:MCP_PORT at MCP_PATH.
  sse              Server-Sent Events on HOST:MCP_PORT under MCP_PATH.

Configuration is read from built-in defaults, the optional --config YAML
file, the dotenv file and the process environment, each overriding the
previous one. Flags override all of them.

The server stops gracefully on SIGINT or SIGTERM. When started by systemd
with Type=notify it reports readiness and shutdown.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := serveFlags.newApplication()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags.register(serveCmd)
	serveFlags.registerTransport(serveCmd)
}
