package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/autochangelog/internal/engine"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func writeChangelog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCommitter(dir, path, remote string) *Committer {
	c := NewCommitter(Options{Dir: dir, Path: path, Remote: remote})
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestCommit_CurrentBranch(t *testing.T) {
	dir, repo := initRepo(t)
	path := writeChangelog(t, dir, "# Changelog\n")

	err := newTestCommitter(dir, path, "").Commit(context.Background(), "", "docs(changelog): update entry for #1")
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	assert.Equal(t, "docs(changelog): update entry for #1", commit.Message)
	assert.Equal(t, DefaultAuthorName, commit.Author.Name)
	assert.Equal(t, DefaultAuthorEmail, commit.Author.Email)

	file, err := commit.File("CHANGELOG.md")
	require.NoError(t, err)
	contents, err := file.Contents()
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n", contents)
}

func TestCommit_NothingToCommit(t *testing.T) {
	dir, _ := initRepo(t)
	path := writeChangelog(t, dir, "# Changelog\n")
	c := newTestCommitter(dir, path, "")

	require.NoError(t, c.Commit(context.Background(), "", "first"))

	err := c.Commit(context.Background(), "", "second")
	assert.ErrorIs(t, err, ErrNothingToCommit)
	assert.ErrorIs(t, err, engine.ErrNothingToCommit)
}

func TestCommit_OnlyStagesChangelog(t *testing.T) {
	dir, repo := initRepo(t)
	path := writeChangelog(t, dir, "# Changelog\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	require.NoError(t, newTestCommitter(dir, path, "").Commit(context.Background(), "", "msg"))

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	_, err = commit.File("other.txt")
	assert.Error(t, err)
}

func TestCommit_RefusesOtherStagedChanges(t *testing.T) {
	dir, repo := initRepo(t)
	path := writeChangelog(t, dir, "# Changelog\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("b.txt")
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)

	err = newTestCommitter(dir, path, "").Commit(context.Background(), "", "msg")
	require.ErrorIs(t, err, ErrOtherStaged)
	assert.ErrorContains(t, err, "a.txt, b.txt")

	_, err = repo.Head()
	assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)

	status, err := wt.Status()
	require.NoError(t, err)
	assert.Equal(t, git.Untracked, status.File("CHANGELOG.md").Staging)
}

func TestStagedExcept(t *testing.T) {
	status := git.Status{
		"CHANGELOG.md": {Staging: git.Modified},
		"z.go":         {Staging: git.Added},
		"a.go":         {Staging: git.Deleted},
		"new.txt":      {Staging: git.Untracked, Worktree: git.Untracked},
		"clean.txt":    {Staging: git.Unmodified, Worktree: git.Modified},
	}

	assert.Equal(t, []string{"a.go", "z.go"}, stagedExcept(status, "CHANGELOG.md"))
	assert.Empty(t, stagedExcept(git.Status{}, "CHANGELOG.md"))
}

func TestCommit_PushesToBranch(t *testing.T) {
	dir, repo := initRepo(t)
	remoteDir := t.TempDir()
	remote, err := git.PlainInit(remoteDir, true)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
	require.NoError(t, err)

	path := writeChangelog(t, dir, "# Changelog\n")
	require.NoError(t, newTestCommitter(dir, path, "origin").Commit(context.Background(), "feature/x", "msg"))

	local, err := repo.Reference(plumbing.NewBranchReferenceName("feature/x"), true)
	require.NoError(t, err)
	pushed, err := remote.Reference(plumbing.NewBranchReferenceName("feature/x"), true)
	require.NoError(t, err)
	assert.Equal(t, local.Hash(), pushed.Hash())
}

func TestCommit_Errors(t *testing.T) {
	tests := map[string]struct {
		setup   func(t *testing.T) *Committer
		wantErr string
	}{
		"not a repository": {
			setup: func(t *testing.T) *Committer {
				dir := t.TempDir()
				return newTestCommitter(dir, writeChangelog(t, dir, "x"), "")
			},
			wantErr: "opening repository",
		},
		"file outside repository": {
			setup: func(t *testing.T) *Committer {
				dir, _ := initRepo(t)
				other := t.TempDir()
				return newTestCommitter(dir, writeChangelog(t, other, "x"), "")
			},
			wantErr: "outside the repository",
		},
		"missing remote": {
			setup: func(t *testing.T) *Committer {
				dir, _ := initRepo(t)
				return newTestCommitter(dir, writeChangelog(t, dir, "x"), "upstream")
			},
			wantErr: "looking up remote 'upstream'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.setup(t).Commit(context.Background(), "main", "msg")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIsSSHURL(t *testing.T) {
	tests := map[string]struct {
		url  string
		want bool
	}{
		"scp style":  {url: "git@github.com:o/r.git", want: true},
		"ssh scheme": {url: "ssh://git@github.com/o/r.git", want: true},
		"git+ssh":    {url: "git+ssh://git@github.com/o/r.git", want: true},
		"https":      {url: "https://github.com/o/r.git", want: false},
		"local path": {url: "/tmp/repo.git", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSSHURL(tt.url))
		})
	}
}

func TestAuthForURL(t *testing.T) {
	t.Setenv("GIT_USERNAME", "")
	t.Setenv("GITHUB_TOKEN", "")

	withToken := NewCommitter(Options{Token: "secret"})
	auth := withToken.authForURL("https://github.com/o/r.git")
	basic, ok := auth.(*http.BasicAuth)
	require.True(t, ok)
	assert.Equal(t, "x-access-token", basic.Username)
	assert.Equal(t, "secret", basic.Password)

	assert.Nil(t, withToken.authForURL("/tmp/repo.git"))
	assert.Nil(t, NewCommitter(Options{}).authForURL("https://github.com/o/r.git"))

	t.Setenv("GITHUB_TOKEN", "env-token")
	basic, ok = NewCommitter(Options{}).authForURL("https://github.com/o/r.git").(*http.BasicAuth)
	require.True(t, ok)
	assert.Equal(t, "env-token", basic.Password)
}
