package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/autochangelog/internal/version"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/autochangelog"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for autochangelog",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		if version.IsDevBuild() {
			fmt.Fprintf(w, "autochangelog %s (development build)\n", version.Version)
		} else {
			fmt.Fprintf(w, "autochangelog %s\n", version.Version)
		}
		fmt.Fprintf(w, "commit: %s\n", truncateCommit(version.Commit))
		fmt.Fprintf(w, "built: %s\n", version.BuildDate)
		fmt.Fprintf(w, "go: %s\n", runtime.Version())
		fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(w, "source: %s\n", SourceURL)
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	rootCmd.AddCommand(versionCmd)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
