// Package engine runs one reconciliation of the changelog for one pull request:
// fetch PR data, detect the existing entry, resolve the action, edit the
// document, persist it and commit the change.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/command"
	"github.com/ariel-frischer/autochangelog/internal/conventional"
	"github.com/ariel-frischer/autochangelog/internal/resolve"
)

// DefaultCommitMessage is the commit message template used when none is configured.
const DefaultCommitMessage = "docs(changelog): update entry for #{{.Number}}"

// dependabotAuthors are the bot logins short-circuited when SkipDependabot is set.
var dependabotAuthors = []string{"dependabot[bot]", "dependabot-preview[bot]"}

// ErrNothingToCommit is returned by a Committer when the worktree has no changes.
var ErrNothingToCommit = errors.New("nothing to commit")

// ErrLookup wraps failures of the PR source's PullRequest call.
var ErrLookup = errors.New("fetching PR")

// PullRequest holds the fields of a PR the engine depends on.
type PullRequest struct {
	Number  int
	Title   string
	Body    string
	HTMLURL string
	Author  string
	Labels  []string
	HeadRef string
}

// PRSource looks up pull requests and their comments.
type PRSource interface {
	PullRequest(ctx context.Context, number int) (*PullRequest, error)
	Comments(ctx context.Context, number int) ([]command.Comment, error)
}

// Store reads and writes the changelog text. Read reports false when the file
// does not exist.
type Store interface {
	Read() (string, bool, error)
	Write(content string) error
}

// Committer records the written changelog in version control and publishes it
// to the given branch.
type Committer interface {
	Commit(ctx context.Context, branch, message string) error
}

// Options configures a run.
type Options struct {
	Trigger        string
	Sections       conventional.SectionMap
	AutoCategorize bool
	SkipDependabot bool
	Policy         resolve.Policy
	CommitMessage  string
	// DryRun computes the result without writing or committing.
	DryRun bool
	// NoCommit writes the file but never calls the Committer.
	NoCommit bool
}

// Result is the outcome of a run.
type Result struct {
	Changed  bool
	Added    int
	State    changelog.EntryState
	Decision resolve.Decision
	// Content is the document after the run, whether or not it was written.
	Content string
}

// Engine wires the collaborators of a run.
type Engine struct {
	source    PRSource
	store     Store
	committer Committer
	opts      Options
	logger    *slog.Logger

	titles   *conventional.Parser
	commands *command.Parser
	message  *template.Template
}

// New creates an engine. committer may be nil, in which case nothing is committed.
func New(source PRSource, store Store, committer Committer, opts Options, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.CommitMessage == "" {
		opts.CommitMessage = DefaultCommitMessage
	}

	msg, err := template.New("commit").Option("missingkey=error").Parse(opts.CommitMessage)
	if err != nil {
		return nil, fmt.Errorf("parsing commit message template: %w", err)
	}

	return &Engine{
		source:    source,
		store:     store,
		committer: committer,
		opts:      opts,
		logger:    logger,
		titles:    conventional.NewParser(opts.Sections),
		commands:  command.NewParser(opts.Trigger),
		message:   msg,
	}, nil
}

// Run reconciles the changelog entry of one PR.
func (e *Engine) Run(ctx context.Context, number int) (*Result, error) {
	log := e.logger.With("run_id", uuid.NewString(), "pr", number)

	pr, err := e.source.PullRequest(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w #%d: %w", ErrLookup, number, err)
	}

	content, err := e.load()
	if err != nil {
		return nil, err
	}

	if e.opts.SkipDependabot && lo.Contains(dependabotAuthors, pr.Author) {
		log.Info("skipping bot-authored PR", "author", pr.Author)
		return &Result{
			State:    changelog.StateSkipped,
			Decision: resolve.Decision{Action: resolve.ActionSkip, Reason: "authored by " + pr.Author},
			Content:  content,
		}, nil
	}

	comments, err := e.source.Comments(ctx, number)
	if err != nil {
		log.Warn("fetching comments failed, using description only", "error", err)
		comments = nil
	}

	det := changelog.Detect(content, number)
	if det.Matches > 1 {
		log.Warn("PR has several changelog lines, treating as manual", "lines", det.Matches)
	}
	log.Debug("detected entry state", "state", det.State, "stored_hash", det.StoredHash,
		"line", changelog.Summary(det.Line, 80))

	decision := e.opts.Policy.Decide(resolve.Input{
		State:       det.State,
		Body:        pr.Body,
		Labels:      pr.Labels,
		Description: e.commands.ParseText(pr.Body),
		Comment:     e.commands.ParseComments(comments),
	})
	log.Info("resolved action", "action", decision.Action, "reason", decision.Reason)

	result := &Result{State: det.State, Decision: decision, Content: content}
	e.edit(result, pr, log)

	if !result.Changed {
		log.Info("changelog unchanged")
		return result, nil
	}
	if e.opts.DryRun {
		log.Info("dry run, not writing changelog", "added", result.Added)
		return result, nil
	}

	if err := e.store.Write(result.Content); err != nil {
		return nil, fmt.Errorf("writing changelog: %w", err)
	}
	log.Info("changelog written", "added", result.Added)

	if err := e.commit(ctx, pr, log); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) load() (string, error) {
	content, ok, err := e.store.Read()
	if err != nil {
		return "", fmt.Errorf("reading changelog: %w", err)
	}
	if !ok || strings.TrimSpace(content) == "" {
		return changelog.NewTemplate(), nil
	}
	return content, nil
}

// edit applies the decision to result.Content.
func (e *Engine) edit(result *Result, pr *PullRequest, log *slog.Logger) {
	if !result.Decision.Writes() {
		return
	}
	if result.Decision.Action == resolve.ActionSkip {
		removed := changelog.RemoveEntry(result.Content, pr.Number)
		result.Changed = removed.Changed
		result.Content = removed.Content
		result.State = changelog.StateSkipped
		return
	}

	entry, ok := e.entry(result.Decision, pr)
	if !ok {
		log.Info("no entry derivable from title", "title", pr.Title)
		result.Decision.Reason += "; title is not a conventional commit"
		return
	}

	applied := changelog.Apply(result.Content, []conventional.Entry{entry}, changelog.ApplyOptions{
		Mark: result.Decision.Mark,
	})
	result.Changed = applied.Changed
	result.Added = applied.Added
	result.Content = applied.Content
}

func (e *Engine) entry(d resolve.Decision, pr *PullRequest) (conventional.Entry, bool) {
	if d.Action == resolve.ActionCustom {
		return conventional.Custom(d.Text, pr.Number, pr.HTMLURL), true
	}
	if !e.opts.AutoCategorize {
		return conventional.Entry{}, false
	}
	return e.titles.Parse(pr.Title, pr.Number, pr.HTMLURL)
}

func (e *Engine) commit(ctx context.Context, pr *PullRequest, log *slog.Logger) error {
	if e.opts.NoCommit || e.committer == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := e.message.Execute(&buf, pr); err != nil {
		return fmt.Errorf("rendering commit message: %w", err)
	}

	err := e.committer.Commit(ctx, pr.HeadRef, buf.String())
	if errors.Is(err, ErrNothingToCommit) {
		log.Info("nothing to commit")
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing changelog: %w", err)
	}
	log.Info("changelog committed", "branch", pr.HeadRef)
	return nil
}
