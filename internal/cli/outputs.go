package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/engine"
)

// envGitHubOutput names the file GitHub Actions reads step outputs from.
const envGitHubOutput = "GITHUB_OUTPUT"

// writeOutputs appends the run result as key=value step outputs.
func writeOutputs(path string, result *engine.Result) error {
	var sb strings.Builder
	for _, kv := range [][2]string{
		{"changed", strconv.FormatBool(result.Changed)},
		{"added", strconv.Itoa(result.Added)},
		{"state", result.State.String()},
		{"action", string(result.Decision.Action)},
	} {
		fmt.Fprintf(&sb, "%s=%s\n", kv[0], kv[1])
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
