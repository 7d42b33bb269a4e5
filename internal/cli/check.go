package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
)

type checkOptions struct {
	File  string
	Plain bool
	Quiet bool
}

var checkOpts checkOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the changelog structure",
	Long: `Validate that the changelog has a title, exactly one Unreleased section and
well-formed release headings, then print the Unreleased entries.

Returns exit code 0 if the structure is valid, or exit code 1 with the
offending lines. PRs referenced by several lines are reported as warnings.`,
	Example: `  autochangelog check
  autochangelog check --file docs/CHANGELOG.md --quiet`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, checkOpts)
	},
}

func init() {
	checkCmd.GroupID = GroupInspect
	checkCmd.Flags().StringVarP(&checkOpts.File, "file", "f", "", "Changelog file (default: changelog_path)")
	checkCmd.Flags().BoolVar(&checkOpts.Plain, "plain", false, "Plain output without colors or icons")
	checkCmd.Flags().BoolVarP(&checkOpts.Quiet, "quiet", "q", false, "Only report problems")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	path, err := changelogPath(opts.File)
	if err != nil {
		return err
	}
	content, err := readChangelog(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	result := changelog.Check(content)

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, e := range result.Errors {
		fmt.Fprintf(w, "%s %s: %s\n", red("✗"), path, e.Error())
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "%s %s: %s\n", yellow("!"), path, warn.Error())
	}
	if result.HasErrors() {
		return clierrors.ChangelogInvalid(path, len(result.Errors))
	}

	if opts.Quiet {
		return nil
	}
	fmt.Fprintf(w, "✓ %s is valid\n\n", path)
	return changelog.FormatUnreleased(content, w, changelog.FormatOptions{Plain: opts.Plain})
}
