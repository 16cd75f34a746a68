package cmd

import (
	"fmt"
	"runtime"

	"github.com/Travis-Prall/court-listener-mcp/internal/status"

	"github.com/spf13/cobra"
)

var versionVerbose bool

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of courtlistener-mcp",
		Long: `Prints the version injected at build time. With --verbose the version
reported by the status tool and the Go runtime are printed as well.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "courtlistener-mcp version %s\n", rootCmd.Version)
			if versionVerbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  reported as: %s\n", status.ResolveVersion(rootCmd.Version))
				fmt.Fprintf(cmd.OutOrStdout(), "  go:          %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
	cmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Also print build details")
	return cmd
}
