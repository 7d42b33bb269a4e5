package errors

import "fmt"

// Common error messages for the autochangelog CLI.
// These templates ensure consistent, actionable error messages.

// MissingPRNumber is returned when neither --pr nor the workflow event names a PR.
func MissingPRNumber() *CLIError {
	return NewPrerequisiteError(
		"could not determine the pull request number",
		"Pass it explicitly: autochangelog run --pr <number>",
		"Or run inside a pull_request, pull_request_target or issue_comment workflow",
	)
}

// MissingRepository is returned when no owner/name is configured or discoverable.
func MissingRepository() *CLIError {
	return NewPrerequisiteError(
		"could not determine the repository",
		"Pass it explicitly: autochangelog run --repo owner/name",
		"Or set 'repository' in .github/autochangelog.yml, AUTOCHANGELOG_REPOSITORY or GITHUB_REPOSITORY",
	)
}

// MissingToken is returned when the GitHub API would be called anonymously.
func MissingToken() *CLIError {
	return NewPrerequisiteError(
		"no GitHub token configured",
		"Expose the workflow token: env: GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}",
		"Or set AUTOCHANGELOG_GITHUB_TOKEN",
	)
}

// InvalidPRNumber is returned for a non-positive --pr value.
func InvalidPRNumber(n int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid pull request number: %d", n),
		"autochangelog <command> --pr <number>",
		"PR numbers are positive integers",
	)
}

// ConfigLoadFailed wraps a configuration loading or validation error.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"loading configuration",
		"Check .github/autochangelog.yml for typos",
		"Run 'autochangelog config show' to inspect the effective configuration",
		"Run 'autochangelog config keys' to list valid keys and values",
	)
}

// ChangelogNotFound is returned when a read-only command targets a missing file.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Check 'changelog_path' in .github/autochangelog.yml or pass --file",
		"Run 'autochangelog run' once to create it from the template",
	)
}

// ChangelogInvalid is returned when Check finds structural errors.
func ChangelogInvalid(path string, count int) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("%s has %d structural error(s)", path, count),
		Remediation: []string{
			"Keep exactly one '## [Unreleased]' heading below the '# Changelog' title",
			"Write release headings as '## [1.2.3] - YYYY-MM-DD'",
		},
	}
}

// GitHubRequestFailed wraps a failed GitHub API call.
func GitHubRequestFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"GitHub API request failed",
		"Check that the token can read pull requests (permissions: pull-requests: read)",
		"For GitHub Enterprise set 'github_api_url'",
	)
}

// PersistFailed wraps a failure to write, commit or push the changelog.
func PersistFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"updating the changelog failed",
		"Grant the workflow 'contents: write' permission",
		"Check out the PR head branch (actions/checkout with ref: ${{ github.head_ref }})",
		"Use --no-commit to only write the file",
	)
}
