package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/status"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	statusFlags  settingsFlags
	statusOutput string
)

// statusCmd prints the snapshot the status tool would return, without
// starting a transport.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the server status snapshot",
	Long: `Builds the server from the current configuration and prints the
snapshot returned by the "status" MCP tool. Nothing is served and the
CourtListener API is not contacted.

Metrics that cannot be sampled on this platform are reported as -1.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	application, err := statusFlags.newApplication()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	snapshot := application.Services().Reporter.Status()
	return writeSnapshot(cmd.OutOrStdout(), snapshot, statusOutput)
}

// writeSnapshot renders a snapshot as indented JSON or YAML.
func writeSnapshot(w io.Writer, snapshot status.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusFlags.register(statusCmd)
	statusFlags.registerTransport(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "json", "Output format: json or yaml")
}
