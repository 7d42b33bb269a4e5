// Package conventional parses conventional-commit style PR titles into changelog
// entries. It recognizes `type(scope)!: description` for a closed set of types and
// maps each type to the changelog section the entry is filed under.
package conventional

import (
	"regexp"
	"strings"
)

// DefaultSection is the section used for custom text and for matched types that
// have no mapping.
const DefaultSection = "Changes"

// titlePattern matches `type(scope)!: description`. The type alternation is the
// closed set of recognized types; everything after ": " is the description.
var titlePattern = regexp.MustCompile(
	`(?i)^(feat|feature|fix|docs|style|refactor|perf|test|chore|ci|build|revert)(?:\(([^()]*)\))?(!)?: (.+)$`)

// Entry is a changelog entry derived from a PR. An empty Type or Scope means the
// value is absent.
type Entry struct {
	Type        string
	Scope       string
	Description string
	Breaking    bool
	PRNumber    int
	PRURL       string
	Section     string
}

// SectionMap maps a lower-case commit type to a changelog section name.
type SectionMap map[string]string

// DefaultSections returns a fresh copy of the built-in type to section table.
func DefaultSections() SectionMap {
	return SectionMap{
		"feat":     "Features",
		"feature":  "Features",
		"fix":      "Bug Fixes",
		"docs":     "Documentation",
		"style":    "Styles",
		"refactor": "Refactoring",
		"perf":     "Performance",
		"test":     "Tests",
		"chore":    "Chores",
		"ci":       "CI",
		"build":    "Build",
		"revert":   "Reverts",
	}
}

// Merge returns a new table with overrides applied on top of m. Keys are
// lower-cased; empty section names are ignored.
func (m SectionMap) Merge(overrides map[string]string) SectionMap {
	merged := make(SectionMap, len(m)+len(overrides))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range overrides {
		if strings.TrimSpace(v) == "" {
			continue
		}
		merged[strings.ToLower(k)] = v
	}
	return merged
}

// Section returns the section for a commit type, or DefaultSection.
func (m SectionMap) Section(commitType string) string {
	if s, ok := m[strings.ToLower(commitType)]; ok {
		return s
	}
	return DefaultSection
}

// Parser turns titles into entries using an immutable section table.
type Parser struct {
	sections SectionMap
}

// NewParser creates a Parser. A nil table selects DefaultSections.
func NewParser(sections SectionMap) *Parser {
	if sections == nil {
		sections = DefaultSections()
	}
	// Copy so later mutation of the caller's map cannot leak in.
	return &Parser{sections: sections.Merge(nil)}
}

// Parse extracts an entry from a PR title. The second return value is false when
// the title is not a conventional commit; that is a normal outcome, not an error.
func (p *Parser) Parse(title string, prNumber int, prURL string) (Entry, bool) {
	m := titlePattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return Entry{}, false
	}

	description := strings.TrimSpace(m[4])
	if description == "" {
		return Entry{}, false
	}

	commitType := strings.ToLower(m[1])
	return Entry{
		Type:        commitType,
		Scope:       strings.TrimSpace(m[2]),
		Description: description,
		Breaking:    m[3] == "!",
		PRNumber:    prNumber,
		PRURL:       prURL,
		Section:     p.sections.Section(commitType),
	}, true
}

// Custom builds the entry for free text supplied by a custom command.
func Custom(text string, prNumber int, prURL string) Entry {
	return Entry{
		Description: strings.TrimSpace(text),
		PRNumber:    prNumber,
		PRURL:       prURL,
		Section:     DefaultSection,
	}
}
