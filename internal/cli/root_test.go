// Package cli tests root command and global flags for autochangelog.
// Related: internal/cli/root.go
// Tags: cli, root, commands, global-flags

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "autochangelog", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceErrors, "errors are printed by the fang error handler")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {flagName: "config", shorthand: "c"},
		"debug flag exists":  {flagName: "debug", shorthand: "d"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		group string
		flags []string
	}{
		"run":     {group: GroupChangelog, flags: []string{"pr", "repo", "dry-run", "no-commit"}},
		"remove":  {group: GroupChangelog, flags: []string{"pr", "file", "dry-run"}},
		"parse":   {group: GroupInspect, flags: []string{"pr", "url", "no-mark"}},
		"state":   {group: GroupInspect, flags: []string{"pr", "file", "plain"}},
		"check":   {group: GroupInspect, flags: []string{"file", "plain", "quiet"}},
		"config":  {group: GroupSetup},
		"version": {group: GroupSetup},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			require.Equal(t, name, cmd.Name())
			assert.Equal(t, tt.group, cmd.GroupID)
			assert.NotEmpty(t, cmd.Short)
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "%s should have --%s", name, flag)
			}
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, len(rootCmd.Groups()))
	for _, g := range rootCmd.Groups() {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{GroupChangelog, GroupInspect, GroupSetup}, ids)
}

func TestConfigCmd_Subcommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"show", "get", "keys", "init"} {
		cmd, _, err := rootCmd.Find([]string{"config", name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
