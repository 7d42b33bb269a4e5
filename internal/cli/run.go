package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/config"
	"github.com/ariel-frischer/autochangelog/internal/engine"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
	"github.com/ariel-frischer/autochangelog/internal/event"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/github"
	"github.com/ariel-frischer/autochangelog/internal/store"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	PR       int
	Repo     string
	DryRun   bool
	NoCommit bool
}

var runOpts runOptions

// newSource builds the PR source. Tests replace it with a fake.
var newSource = func(repository, token, baseURL string) (engine.PRSource, error) {
	client, err := github.New(repository, token, baseURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the changelog entry of a pull request",
	Long: `Reconcile the Unreleased changelog entry of one pull request.

The PR is looked up on GitHub together with its labels and comments, its
current entry is classified, and the entry is generated, regenerated,
replaced by custom text, removed or left alone. When the file changes it is
written, committed and pushed to the PR head branch.

Inside GitHub Actions the PR number and repository are read from the
workflow event, so no flags are needed.`,
	Example: `  # In a pull_request workflow
  autochangelog run

  # Outside CI
  GITHUB_TOKEN=... autochangelog run --repo owner/name --pr 42

  # Write the file but leave committing to a later step
  autochangelog run --no-commit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd, runOpts)
	},
}

func init() {
	runCmd.GroupID = GroupChangelog
	runCmd.Flags().IntVar(&runOpts.PR, "pr", 0, "Pull request number (default: from the workflow event)")
	runCmd.Flags().StringVar(&runOpts.Repo, "repo", "", "Repository as owner/name (default: from config or the workflow event)")
	runCmd.Flags().BoolVar(&runOpts.DryRun, "dry-run", false, "Compute the result without writing or committing")
	runCmd.Flags().BoolVar(&runOpts.NoCommit, "no-commit", false, "Write the changelog but do not commit or push")
	rootCmd.AddCommand(runCmd)
}

func runReconcile(cmd *cobra.Command, opts runOptions) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ev, err := event.Discover(os.Getenv)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Prerequisite, "reading workflow event",
			"Check that GITHUB_EVENT_PATH points to the event payload")
	}

	number, repo, err := resolveTarget(opts, cfg, ev)
	if err != nil {
		return err
	}
	if cfg.GitHubToken == "" && !opts.DryRun {
		return clierrors.MissingToken()
	}

	source, err := newSource(repo, cfg.GitHubToken, cfg.GitHubAPIURL)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "creating GitHub client",
			"Repositories are written as owner/name",
			"Check 'github_api_url' in .github/autochangelog.yml")
	}

	var committer engine.Committer
	if cfg.Commit && !opts.NoCommit && !opts.DryRun {
		committer = git.NewCommitter(git.Options{
			Path:        cfg.ChangelogPath,
			Remote:      cfg.Remote,
			AuthorName:  cfg.CommitAuthorName,
			AuthorEmail: cfg.CommitAuthorEmail,
			Token:       cfg.GitHubToken,
		})
	}

	eng, err := engine.New(source, store.NewFile(cfg.ChangelogPath), committer, engine.Options{
		Trigger:        cfg.CommentTrigger,
		Sections:       cfg.SectionMap(),
		AutoCategorize: cfg.AutoCategorize,
		SkipDependabot: cfg.SkipDependabot,
		Policy:         cfg.Policy(),
		CommitMessage:  cfg.CommitMessage,
		DryRun:         opts.DryRun,
		NoCommit:       opts.NoCommit || !cfg.Commit,
	}, slog.Default())
	if err != nil {
		return clierrors.ConfigLoadFailed(err)
	}

	result, err := eng.Run(cmd.Context(), number)
	if err != nil {
		if errors.Is(err, engine.ErrLookup) {
			return clierrors.GitHubRequestFailed(err)
		}
		return clierrors.PersistFailed(err)
	}

	printResult(cmd.OutOrStdout(), cfg.ChangelogPath, result, opts.DryRun)
	if path := os.Getenv(envGitHubOutput); path != "" {
		if err := writeOutputs(path, result); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing step outputs")
		}
	}
	return nil
}

// resolveTarget picks the PR number and repository from flags, configuration
// and the workflow event, in that order.
func resolveTarget(opts runOptions, cfg *config.Configuration, ev *event.Event) (int, string, error) {
	number := opts.PR
	if number == 0 {
		number = ev.PRNumber
	}
	switch {
	case number < 0:
		return 0, "", clierrors.InvalidPRNumber(number)
	case number == 0:
		return 0, "", clierrors.MissingPRNumber()
	}

	repo := opts.Repo
	if repo == "" {
		repo = cfg.Repository
	}
	if repo == "" {
		repo = ev.Repository
	}
	if repo == "" {
		return 0, "", clierrors.MissingRepository()
	}
	return number, repo, nil
}

func printResult(w io.Writer, path string, result *engine.Result, dryRun bool) {
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s %s (%s)\n", dim("action:"), result.Decision.Action, result.Decision.Reason)
	fmt.Fprintf(w, "%s  %s\n", dim("state:"), result.State)

	switch {
	case !result.Changed:
		fmt.Fprintf(w, "%s is up to date\n", path)
	case dryRun:
		fmt.Fprintf(w, "%s would change (dry run)\n", path)
	default:
		fmt.Fprintf(w, "%s %s updated\n", green("✓"), path)
	}
}
