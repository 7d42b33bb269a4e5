package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/store"
)

type stateOptions struct {
	PR    int
	File  string
	Plain bool
}

var stateOpts stateOptions

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show how a PR is recorded in the Unreleased section",
	Long: `Classify the Unreleased entry of a PR as NONE, AUTO_UNTOUCHED, AUTO_EDITED
or MANUAL, the same way 'run' does before deciding what to do.`,
	Example: `  autochangelog state --pr 42
  autochangelog state --pr 42 --file docs/CHANGELOG.md --plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runState(cmd, stateOpts)
	},
}

func init() {
	stateCmd.GroupID = GroupInspect
	stateCmd.Flags().IntVar(&stateOpts.PR, "pr", 0, "Pull request number")
	stateCmd.Flags().StringVarP(&stateOpts.File, "file", "f", "", "Changelog file (default: changelog_path)")
	stateCmd.Flags().BoolVar(&stateOpts.Plain, "plain", false, "Plain output without colors or icons")
	_ = stateCmd.MarkFlagRequired("pr")
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, opts stateOptions) error {
	if opts.PR <= 0 {
		return clierrors.InvalidPRNumber(opts.PR)
	}
	path, err := changelogPath(opts.File)
	if err != nil {
		return err
	}
	content, err := readChangelog(path)
	if err != nil {
		return err
	}

	det := changelog.Detect(content, opts.PR)
	return changelog.FormatDetection(opts.PR, det, cmd.OutOrStdout(), changelog.FormatOptions{Plain: opts.Plain})
}

// readChangelog returns the content of an existing changelog.
func readChangelog(path string) (string, error) {
	content, ok, err := store.NewFile(path).Read()
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Runtime)
	}
	if !ok {
		return "", clierrors.ChangelogNotFound(path)
	}
	return content, nil
}
