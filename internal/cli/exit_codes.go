package cli

import (
	"context"
	"errors"

	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
)

// Exit codes for the autochangelog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates the changelog failed its structural check
	ExitValidationFailed = 1

	// ExitRuntimeFailed indicates a GitHub lookup or a write/commit/push failed
	ExitRuntimeFailed = 2

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates the PR, repository or token could not be determined
	ExitMissingPrerequisites = 4

	// ExitTimeout indicates command execution timed out or was interrupted
	ExitTimeout = 5
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ExitTimeout
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitInvalidArguments
	}
	switch cliErr.Category {
	case clierrors.Validation:
		return ExitValidationFailed
	case clierrors.Runtime:
		return ExitRuntimeFailed
	case clierrors.Prerequisite:
		return ExitMissingPrerequisites
	default:
		return ExitInvalidArguments
	}
}
