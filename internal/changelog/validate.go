package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// ValidationError represents a single structural problem with line context.
type ValidationError struct {
	Line    int // 1-indexed line number (0 if not applicable)
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ValidationResult holds the outcome of Check.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error or nil.
func (r ValidationResult) Error() error {
	if !r.HasErrors() {
		return nil
	}
	msgs := lo.Map(r.Errors, func(e ValidationError, _ int) string {
		return e.Error()
	})
	return errors.New(strings.Join(msgs, "; "))
}

// Check validates the structure the editor relies on:
//   - a level-1 title precedes all sections
//   - exactly one "## [Unreleased]" section exists
//   - release headings carry a semantic version and a YYYY-MM-DD date
//   - no PR owns more than one line in the Unreleased section (warning)
func Check(content string) ValidationResult {
	doc := Parse(content)
	result := ValidationResult{}

	if !hasTitle(doc.Preamble) {
		result.Errors = append(result.Errors, ValidationError{
			Message: "changelog must start with a level-1 title (e.g. '# Changelog')",
		})
	}

	unreleased := lo.Filter(doc.Sections, func(s *Section, _ int) bool {
		return s.IsUnreleased()
	})
	switch len(unreleased) {
	case 0:
		result.Errors = append(result.Errors, ValidationError{
			Message: "missing '## [Unreleased]' section",
		})
	case 1:
	default:
		for _, s := range unreleased[1:] {
			result.Errors = append(result.Errors, ValidationError{
				Line:    s.Line,
				Message: "duplicate '## [Unreleased]' section",
			})
		}
	}

	for _, s := range doc.Sections {
		if s.Level != 2 || s.IsUnreleased() {
			continue
		}
		result.Errors = append(result.Errors, checkRelease(s)...)
	}

	if len(unreleased) > 0 {
		result.Warnings = append(result.Warnings, checkDuplicateEntries(unreleased[0])...)
	}

	return result
}

func hasTitle(preamble []string) bool {
	for _, line := range preamble {
		if isBlank(line) {
			continue
		}
		return headingLevel(line) == 1
	}
	return false
}

func checkRelease(s *Section) []ValidationError {
	var errs []ValidationError
	if _, err := semver.NewVersion(s.Name); err != nil {
		errs = append(errs, ValidationError{
			Line:    s.Line,
			Message: fmt.Sprintf("release heading %q is not a semantic version", s.Name),
		})
	}
	if s.Date == "" {
		errs = append(errs, ValidationError{
			Line:    s.Line,
			Message: fmt.Sprintf("release '%s' must include a date 'YYYY-MM-DD'", s.Name),
		})
	} else if _, err := time.Parse(time.DateOnly, s.Date); err != nil {
		errs = append(errs, ValidationError{
			Line:    s.Line,
			Message: fmt.Sprintf("release '%s' has invalid date %q (expected YYYY-MM-DD)", s.Name, s.Date),
		})
	}
	return errs
}

func checkDuplicateEntries(s *Section) []ValidationError {
	counts := make(map[int]int)
	var order []int
	for _, line := range s.EntryLines() {
		for _, pr := range lo.Uniq(referencedPRs(line)) {
			if counts[pr] == 0 {
				order = append(order, pr)
			}
			counts[pr]++
		}
	}

	var warnings []ValidationError
	for _, pr := range order {
		if counts[pr] > 1 {
			warnings = append(warnings, ValidationError{
				Line:    s.Line,
				Message: fmt.Sprintf("PR #%d has %d lines in the Unreleased section", pr, counts[pr]),
			})
		}
	}
	return warnings
}
