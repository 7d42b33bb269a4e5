package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	tests := map[ErrorCategory]string{
		Argument:          "Argument Error",
		Configuration:     "Configuration Error",
		Prerequisite:      "Prerequisite Error",
		Runtime:           "Runtime Error",
		Validation:        "Validation Error",
		ErrorCategory(99): "Error",
	}

	for category, want := range tests {
		t.Run(want, func(t *testing.T) {
			assert.Equal(t, want, category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")

	wrapped := WrapWithMessage(cause, Runtime, "pushing", "retry")
	assert.Equal(t, "pushing: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, []string{"retry"}, wrapped.Remediation)

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
	assert.Equal(t, "boom", Wrap(cause, Configuration).Error())
}

func TestAsCLIError(t *testing.T) {
	cliErr := MissingPRNumber()

	assert.Same(t, cliErr, AsCLIError(cliErr))
	assert.Same(t, cliErr, AsCLIError(fmt.Errorf("context: %w", cliErr)))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	out := FormatErrorPlain(InvalidPRNumber(0))

	assert.True(t, strings.HasPrefix(out, "Error [Argument Error]: invalid pull request number: 0\n"))
	assert.Contains(t, out, "Usage: autochangelog <command> --pr <number>")
	assert.Contains(t, out, "To fix this:\n  • PR numbers are positive integers\n")
}

func TestMessages(t *testing.T) {
	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"missing pr":    {err: MissingPRNumber(), category: Prerequisite, contains: "pull request number"},
		"missing repo":  {err: MissingRepository(), category: Prerequisite, contains: "repository"},
		"missing token": {err: MissingToken(), category: Prerequisite, contains: "token"},
		"config":        {err: ConfigLoadFailed(stderrors.New("bad")), category: Configuration, contains: "bad"},
		"not found":     {err: ChangelogNotFound("CHANGELOG.md"), category: Prerequisite, contains: "CHANGELOG.md"},
		"invalid":       {err: ChangelogInvalid("CHANGELOG.md", 2), category: Validation, contains: "2 structural"},
		"github":        {err: GitHubRequestFailed(stderrors.New("401")), category: Runtime, contains: "401"},
		"persist":       {err: PersistFailed(stderrors.New("rejected")), category: Runtime, contains: "rejected"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}

func TestFprintError(t *testing.T) {
	var sb strings.Builder
	FprintError(&sb, ChangelogNotFound("docs/CHANGELOG.md"))
	assert.Contains(t, sb.String(), "changelog not found: docs/CHANGELOG.md")
	assert.Contains(t, sb.String(), "To fix this:")

	sb.Reset()
	FprintError(&sb, nil)
	assert.Empty(t, sb.String())
	assert.Empty(t, FormatError(nil))
}
