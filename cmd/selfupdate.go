package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the GitHub repository (owner/repo) releases are fetched from.
const githubRepoSlug = "Travis-Prall/court-listener-mcp"

var selfUpdateCheckOnly bool

// newSelfUpdateCmd creates the Cobra command for the self-update functionality.
func newSelfUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update courtlistener-mcp to the latest version",
		Long: `Checks for the latest release of courtlistener-mcp on GitHub and
replaces the current binary if a newer version is found.

Use --check to report whether an update is available without installing it.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
	cmd.Flags().BoolVar(&selfUpdateCheckOnly, "check", false, "Only report whether a newer release exists")
	return cmd
}

// runSelfUpdate compares the running version against the latest GitHub
// release and replaces the executable when it is older.
func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current := rootCmd.Version
	if current == "" || current == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	ctx := context.Background()
	var out io.Writer = os.Stdout
	if cmd != nil {
		out = cmd.OutOrStdout()
		if cmd.Context() != nil {
			ctx = cmd.Context()
		}
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	fmt.Fprintf(out, "Current version: %s, checking %s for releases...\n", current, githubRepoSlug)
	release, err := latestRelease(ctx, updater)
	if err != nil {
		return err
	}
	if !release.GreaterThan(current) {
		fmt.Fprintln(out, "Already up to date.")
		return nil
	}

	fmt.Fprintf(out, "Version %s is available (published %s)\n", release.Version(), release.PublishedAt.Format("2006-01-02"))
	if selfUpdateCheckOnly {
		return nil
	}
	if release.ReleaseNotes != "" {
		fmt.Fprintf(out, "\n%s\n\n", release.ReleaseNotes)
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, release, exe); err != nil {
		return fmt.Errorf("update of %s failed: %w", exe, err)
	}

	fmt.Fprintf(out, "Updated %s to %s\n", exe, release.Version())
	return nil
}

func latestRelease(ctx context.Context, updater *selfupdate.Updater) (*selfupdate.Release, error) {
	release, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return nil, fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no release found for %s", githubRepoSlug)
	}
	return release, nil
}
