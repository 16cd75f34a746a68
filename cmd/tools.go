package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/server"
	pkgstrings "github.com/Travis-Prall/court-listener-mcp/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	toolsFlags     settingsFlags
	toolsQuiet     bool
	toolsNamespace string
)

// toolsCmd lists the published tool identifiers.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server publishes",
	Long: `Registers every tool group exactly as "serve" does and lists the
resulting identifiers with their required parameters.

Registration errors are reported with exit code 3.`,
	Args: cobra.NoArgs,
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	application, err := toolsFlags.newApplication()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	entries := filterEntries(application.Services().Registry.Entries(), toolsNamespace)
	if toolsQuiet {
		for _, entry := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), entry.Identifier)
		}
		return nil
	}
	writeToolsTable(cmd.OutOrStdout(), entries, toolsNamespace == "")
	return nil
}

// filterEntries keeps the entries of one namespace; an empty namespace keeps all.
func filterEntries(entries []registry.Entry, namespace string) []registry.Entry {
	if namespace == "" {
		return entries
	}
	var out []registry.Entry
	for _, entry := range entries {
		if strings.EqualFold(entry.Namespace, namespace) {
			out = append(out, entry)
		}
	}
	return out
}

// writeToolsTable renders entries as a table. withRoot adds the status tool,
// which is served outside the registry.
func writeToolsTable(w io.Writer, entries []registry.Entry, withRoot bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("TOOL"),
		text.FgHiCyan.Sprint("NAMESPACE"),
		text.FgHiCyan.Sprint("REQUIRED"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})

	if withRoot {
		t.AppendRow(table.Row{server.StatusToolName, "-", "", server.StatusToolDescription})
	}
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.Identifier,
			entry.Namespace,
			strings.Join(entry.Required(), ", "),
			pkgstrings.SingleLine(entry.Tool.Description, pkgstrings.DefaultDescriptionMaxLen),
		})
	}

	count := len(entries)
	if withRoot {
		count++
	}
	t.AppendFooter(table.Row{"", "", "TOTAL", count})
	t.Render()
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsFlags.register(toolsCmd)
	toolsCmd.Flags().BoolVarP(&toolsQuiet, "quiet", "q", false, "Print identifiers only")
	toolsCmd.Flags().StringVarP(&toolsNamespace, "namespace", "n", "", "Only list tools of this namespace (search, get or citation)")
}
