package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/autochangelog/internal/command"
	"github.com/ariel-frischer/autochangelog/internal/config"
	"github.com/ariel-frischer/autochangelog/internal/engine"
)

type fakeSource struct {
	pr        *engine.PullRequest
	err       error
	requested []int
}

func (f *fakeSource) PullRequest(_ context.Context, number int) (*engine.PullRequest, error) {
	f.requested = append(f.requested, number)
	if f.err != nil {
		return nil, f.err
	}
	return f.pr, nil
}

func (f *fakeSource) Comments(_ context.Context, _ int) ([]command.Comment, error) {
	return nil, nil
}

// isolate runs the test in an empty directory with no config or CI
// environment and resets the package-level flag state.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"GITHUB_TOKEN", "GITHUB_REPOSITORY", "GITHUB_EVENT_PATH", "GITHUB_EVENT_NAME", envGitHubOutput} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for key := range config.KnownKeys {
		t.Setenv(config.EnvPrefix+strings.ToUpper(key), "")
		os.Unsetenv(config.EnvPrefix + strings.ToUpper(key))
	}

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	prevSource := newSource
	prevLogger := slog.Default()
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		newSource = prevSource
		slog.SetDefault(prevLogger)
		configPath = ""
		debug = false
	})
	configPath = ""
	debug = false
	return dir
}

// useSource makes run use src and records the repository it was built for.
func useSource(t *testing.T, src engine.PRSource) *string {
	t.Helper()
	var repo string
	newSource = func(repository, _, _ string) (engine.PRSource, error) {
		repo = repository
		return src, nil
	}
	return &repo
}

// testCmd returns a command whose output is captured.
func testCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	return cmd, &out
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
