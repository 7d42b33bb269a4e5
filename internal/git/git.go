// Package git commits the updated changelog and pushes it to the PR head
// branch. It uses go-git only, so no git binary is required on the runner.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/ariel-frischer/autochangelog/internal/engine"
)

// ErrNothingToCommit is returned when the changelog has no staged changes.
var ErrNothingToCommit = engine.ErrNothingToCommit

// ErrOtherStaged is returned when the index already holds changes to files
// other than the changelog.
var ErrOtherStaged = errors.New("other changes are staged")

// Default commit author, the identity GitHub Actions uses for bot commits.
const (
	DefaultAuthorName  = "github-actions[bot]"
	DefaultAuthorEmail = "41898282+github-actions[bot]@users.noreply.github.com"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options configures a Committer.
type Options struct {
	// Dir is any path inside the repository; empty means the working directory.
	Dir string
	// Path is the changelog file to stage.
	Path string
	// Remote is the remote to push to. Empty disables pushing.
	Remote      string
	AuthorName  string
	AuthorEmail string
	// Token authenticates HTTPS pushes. Falls back to GIT_USERNAME/GIT_PASSWORD
	// and GITHUB_TOKEN from the environment.
	Token string
}

// Committer stages, commits and pushes a single file.
type Committer struct {
	opts Options
	now  func() time.Time
}

// NewCommitter creates a Committer, filling in the default author.
func NewCommitter(opts Options) *Committer {
	if opts.AuthorName == "" {
		opts.AuthorName = DefaultAuthorName
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = DefaultAuthorEmail
	}
	return &Committer{opts: opts, now: time.Now}
}

// Commit stages the changelog, commits it and pushes the commit to branch on
// the configured remote. An empty branch means the currently checked out one.
func (c *Committer) Commit(ctx context.Context, branch, message string) error {
	repo, err := openRepo(c.opts.Dir)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	rel, err := relativePath(wt.Filesystem.Root(), c.opts.Path)
	if err != nil {
		return err
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("reading worktree status: %w", err)
	}
	if others := stagedExcept(status, rel); len(others) > 0 {
		return fmt.Errorf("%w: %s", ErrOtherStaged, strings.Join(others, ", "))
	}

	if _, err := wt.Add(rel); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}

	status, err = wt.Status()
	if err != nil {
		return fmt.Errorf("reading worktree status: %w", err)
	}
	if fs, ok := status[rel]; !ok || fs.Staging == git.Unmodified {
		logDebug("[git] %s has no staged changes", rel)
		return ErrNothingToCommit
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.opts.AuthorName,
			Email: c.opts.AuthorEmail,
			When:  c.now(),
		},
	})
	if err != nil {
		return fmt.Errorf("committing %s: %w", rel, err)
	}
	logDebug("[git] committed %s as %s", rel, hash)

	if branch == "" {
		branch, err = currentBranch(repo)
		if err != nil {
			return err
		}
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(ref, hash)); err != nil {
		return fmt.Errorf("updating %s: %w", ref, err)
	}

	if c.opts.Remote == "" {
		return nil
	}
	return c.push(ctx, repo, ref)
}

// stagedExcept lists the paths other than path that have staged changes.
func stagedExcept(status git.Status, path string) []string {
	var paths []string
	for p, fs := range status {
		if p == path || fs.Staging == git.Unmodified || fs.Staging == git.Untracked {
			continue
		}
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (c *Committer) push(ctx context.Context, repo *git.Repository, ref plumbing.ReferenceName) error {
	remote, err := repo.Remote(c.opts.Remote)
	if err != nil {
		return fmt.Errorf("looking up remote '%s': %w", c.opts.Remote, err)
	}

	var auth transport.AuthMethod
	if urls := remote.Config().URLs; len(urls) > 0 {
		auth = c.authForURL(urls[0])
	}

	spec := config.RefSpec(ref.String() + ":" + ref.String())
	logDebug("[git] pushing %s to %s", spec, c.opts.Remote)

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: c.opts.Remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing %s to '%s': %w", ref.Short(), c.opts.Remote, err)
	}
	return nil
}

// openRepo opens the git repository containing path, or the current working
// directory when path is empty.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// currentBranch returns the checked out branch. A detached HEAD is an error
// because there is no branch to push to.
func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached and no branch was given")
	}
	return head.Name().Short(), nil
}

// relativePath converts path to a slash-separated path relative to root.
func relativePath(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository at %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}

// authForURL returns the appropriate authentication method for a remote URL.
// SSH URLs use SSH agent auth, HTTPS URLs use the configured token or
// environment credentials.
func (c *Committer) authForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[git] SSH agent auth failed: %v", err)
			return nil
		}
		return auth
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil
	}

	if c.opts.Token != "" {
		return &http.BasicAuth{Username: "x-access-token", Password: c.opts.Token}
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			return &http.BasicAuth{Username: "x-access-token", Password: token}
		}
	}
	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}
	return nil
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
