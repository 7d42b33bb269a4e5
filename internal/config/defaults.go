package config

import (
	"github.com/ariel-frischer/autochangelog/internal/command"
	"github.com/ariel-frischer/autochangelog/internal/engine"
	"github.com/ariel-frischer/autochangelog/internal/git"
	"github.com/ariel-frischer/autochangelog/internal/resolve"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# autochangelog configuration
# Place this file at .github/autochangelog.yml. See 'autochangelog config keys' for all options.

changelog_path: CHANGELOG.md          # Changelog file, relative to the repository root
auto_categorize: true                 # Generate entries from conventional commit PR titles
comment_trigger: /changelog           # Prefix of skip/regenerate/custom commands
skip_dependabot: true                 # Ignore PRs opened by dependabot
default_behavior: auto                # auto | opt-in
opt_in_checkbox: Add to changelog     # Checkbox label required in opt-in mode
preserve_edited: true                 # Never overwrite entries edited by hand
skip_labels:                          # Labels (or glob patterns) that skip a PR
  - skip-changelog

# Commit type to section overrides
# sections:
#   chore: Maintenance

# GitHub API
repository: ""                        # owner/name (default: from the workflow event)
github_token: ""                      # default: $GITHUB_TOKEN
github_api_url: ""                    # GitHub Enterprise API URL

# Commit and push
commit: true                          # Commit and push the changelog when it changes
commit_message: "docs(changelog): update entry for #{{.Number}}"
commit_author_name: github-actions[bot]
commit_author_email: 41898282+github-actions[bot]@users.noreply.github.com
remote: origin                        # Remote to push to (empty = commit only)

log_level: info                       # debug | info | warn | error
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":  "CHANGELOG.md",
		"auto_categorize": true,
		"comment_trigger": command.DefaultTrigger,
		"skip_dependabot": true,
		// default_behavior: "auto" records every PR unless a command or label
		// says otherwise; "opt-in" requires the checkbox below.
		"default_behavior": string(resolve.BehaviorAuto),
		"opt_in_checkbox":  resolve.DefaultOptInCheckbox,
		"preserve_edited":  true,
		"skip_labels":      []string{"skip-changelog"},
		"repository":       "",
		"github_token":     "",
		"github_api_url":   "",
		// commit: the changelog is committed and pushed to the PR head branch
		// only when the run changed it.
		"commit":              true,
		"commit_message":      engine.DefaultCommitMessage,
		"commit_author_name":  git.DefaultAuthorName,
		"commit_author_email": git.DefaultAuthorEmail,
		"remote":              "origin",
		"log_level":           "info",
	}
}
