package cmd

import (
	"errors"
	"os"

	"github.com/Travis-Prall/court-listener-mcp/internal/config"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfig indicates malformed settings.
	ExitCodeConfig = 2
	// ExitCodeRegistration indicates a tool naming collision or malformed tool group.
	ExitCodeRegistration = 3
)

// rootCmd represents the base command for the courtlistener-mcp application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "courtlistener-mcp",
	Short: "MCP server for the CourtListener legal database",
	Long: `courtlistener-mcp exposes the CourtListener REST API to AI assistants
over the Model Context Protocol.

Tools are grouped into the search, get and citation namespaces and are
published as <namespace>_<tool>, e.g. search_opinions or citation_lookup.
A root "status" tool reports the health of the server itself.

Set COURT_LISTENER_API_KEY to the token from your CourtListener profile
(COURTLISTENER_API_KEY in the environment or settings file is the fallback).`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is called from the main package to inject the version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "courtlistener-mcp version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the exit code based on the error type so that
// scripts and process supervisors can tell startup failures apart.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		return ExitCodeConfig
	}

	if registry.IsRegistrationError(err) {
		return ExitCodeRegistration
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
