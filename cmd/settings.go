package cmd

import (
	"github.com/Travis-Prall/court-listener-mcp/internal/app"

	"github.com/spf13/cobra"
)

// settingsFlags are the configuration flags shared by commands that build
// the application.
type settingsFlags struct {
	configPath string
	envFile    string
	transport  string
	debug      bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Optional YAML settings file with flat keys (e.g. mcp_port: 9000)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Dotenv file to load (default \".env\"; \"-\" disables it)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

// registerTransport adds the --transport override.
func (f *settingsFlags) registerTransport(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.transport, "transport", "", "Override MCP_TRANSPORT (stdio, http, streamable-http, sse)")
}

func (f *settingsFlags) newApplication() (*app.Application, error) {
	cfg := app.NewConfig(f.debug, f.configPath, f.envFile, f.transport, rootCmd.Version)
	return app.NewApplication(cfg)
}
