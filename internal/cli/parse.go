package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/conventional"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
)

type parseOptions struct {
	PR     int
	URL    string
	NoMark bool
}

var parseOpts parseOptions

var parseCmd = &cobra.Command{
	Use:   "parse <title>",
	Short: "Show the changelog line generated for a PR title",
	Long: `Parse a conventional commit PR title and print the section and line that
'run' would write for it. The configured section overrides apply.`,
	Example: `  autochangelog parse "feat(api)!: drop v1 endpoints" --pr 42 \
    --url https://github.com/owner/name/pull/42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args[0], parseOpts)
	},
}

func init() {
	parseCmd.GroupID = GroupInspect
	parseCmd.Flags().IntVar(&parseOpts.PR, "pr", 0, "Pull request number to reference")
	parseCmd.Flags().StringVar(&parseOpts.URL, "url", "", "Pull request URL to link")
	parseCmd.Flags().BoolVar(&parseOpts.NoMark, "no-mark", false, "Omit the tracking marker")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, title string, opts parseOptions) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if opts.PR < 0 {
		return clierrors.InvalidPRNumber(opts.PR)
	}

	entry, ok := conventional.NewParser(cfg.SectionMap()).Parse(title, opts.PR, opts.URL)
	if !ok {
		return clierrors.NewArgumentError(
			fmt.Sprintf("not a conventional commit title: %q", title),
			"Use the form 'type(scope)!: description', e.g. 'fix(parser): handle CRLF'",
		)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "section: %s\n", entry.Section)
	fmt.Fprintf(w, "line:    %s\n", changelog.RenderLine(entry, !opts.NoMark))
	return nil
}
