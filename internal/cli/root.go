// Package cli implements the autochangelog command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/config"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/log"
	"github.com/ariel-frischer/autochangelog/internal/version"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupInspect   = "inspect"
	GroupSetup     = "setup"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "autochangelog",
	Short: "Keep the Unreleased section of a changelog in sync with pull requests",
	Long: `autochangelog maintains one line per pull request in the "## [Unreleased]"
section of a Keep-a-Changelog style CHANGELOG.md.

Entries are generated from conventional commit PR titles and tagged with a
hidden marker, so later runs can tell untouched entries from ones edited by
hand. Authors steer the result with commands in the PR description or
comments:

  /changelog skip          remove the PR's entry and keep it out
  /changelog regenerate    rebuild the entry from the title
  /changelog: <text>       use custom text`,
	Example: `  # Reconcile the PR of the current GitHub Actions event
  autochangelog run

  # Preview a run for PR 42 without writing anything
  autochangelog run --pr 42 --dry-run

  # Inspect how a PR is recorded
  autochangelog state --pr 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[git] "+format+"\n", args...)
			})
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to project config file (default: .github/autochangelog.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)
}

// Execute runs the root command through fang.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version.String()),
		fang.WithoutManpage(),
		fang.WithErrorHandler(handleError),
	)
}

// handleError prints CLIErrors with their remediation steps and falls back to
// fang's styling for everything else.
func handleError(w io.Writer, styles fang.Styles, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// loadConfig loads the layered configuration and installs the logger.
func loadConfig(w io.Writer) (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if _, err := log.Setup(w, level); err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}
	return cfg, nil
}

// changelogPath returns the --file flag value, or the configured path.
func changelogPath(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return "", err
	}
	return cfg.ChangelogPath, nil
}
