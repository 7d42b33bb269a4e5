package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/store"
)

type removeOptions struct {
	PR     int
	File   string
	DryRun bool
}

var removeOpts removeOptions

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove every changelog line of a PR",
	Long: `Remove all lines that belong to a PR from every section of the changelog,
marked or not. Nothing is committed.`,
	Example: `  autochangelog remove --pr 42
  autochangelog remove --pr 42 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd, removeOpts)
	},
}

func init() {
	removeCmd.GroupID = GroupChangelog
	removeCmd.Flags().IntVar(&removeOpts.PR, "pr", 0, "Pull request number")
	removeCmd.Flags().StringVarP(&removeOpts.File, "file", "f", "", "Changelog file (default: changelog_path)")
	removeCmd.Flags().BoolVar(&removeOpts.DryRun, "dry-run", false, "Report what would be removed without writing")
	_ = removeCmd.MarkFlagRequired("pr")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, opts removeOptions) error {
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

	w := cmd.OutOrStdout()
	result := changelog.RemoveEntry(content, opts.PR)
	if !result.Changed {
		fmt.Fprintf(w, "no lines for PR #%d in %s\n", opts.PR, path)
		return nil
	}
	if opts.DryRun {
		fmt.Fprintf(w, "would remove %d line(s) for PR #%d from %s\n", result.Removed, opts.PR, path)
		return nil
	}

	if err := store.NewFile(path).Write(result.Content); err != nil {
		return clierrors.PersistFailed(err)
	}
	fmt.Fprintf(w, "removed %d line(s) for PR #%d from %s\n", result.Removed, opts.PR, path)
	return nil
}
