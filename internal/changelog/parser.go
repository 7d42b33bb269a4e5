package changelog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/marker"
)

// UnreleasedName is the name of the only section the editor mutates.
const UnreleasedName = "Unreleased"

var (
	// headingTitlePattern splits "[1.2.0] - 2026-01-02" into name and date.
	headingTitlePattern = regexp.MustCompile(`^\[([^\]]+)\](?:\s+-\s+(\S+))?`)

	// linkDefinitionPattern matches reference definitions like "[1.0.0]: https://...".
	linkDefinitionPattern = regexp.MustCompile(`^\[[^\]]+\]:\s`)

	// prLinkPattern captures PR numbers from "[#123](" style links.
	prLinkPattern = regexp.MustCompile(`\[#([0-9]+)\]\(`)

	// pullURLPattern captures PR numbers from ".../pull/123" URLs.
	pullURLPattern = regexp.MustCompile(`/pull/([0-9]+)`)
)

// Parse splits content into preamble, sections and groups. It never fails:
// anything that is not a recognized heading is kept as an opaque line.
func Parse(content string) *Document {
	lines := strings.Split(content, "\n")
	doc := &Document{}
	if strings.HasSuffix(lines[0], "\r") {
		doc.eol = "\r"
	}

	var section *Section
	var group *Group
	for i, line := range lines {
		level := headingLevel(line)
		switch {
		case level == 2 || (level == 1 && section != nil):
			section = newSection(line, level, i+1)
			doc.Sections = append(doc.Sections, section)
			group = nil
		case level == 3 && section != nil:
			group = &Group{Heading: line, Name: headingText(line), Line: i + 1}
			section.Groups = append(section.Groups, group)
		case group != nil:
			group.Lines = append(group.Lines, line)
		case section != nil:
			section.Body = append(section.Body, line)
		default:
			doc.Preamble = append(doc.Preamble, line)
		}
	}

	return doc
}

// String serializes the document.
func (d *Document) String() string {
	var lines []string
	lines = append(lines, d.Preamble...)
	for _, s := range d.Sections {
		lines = append(lines, s.Heading)
		lines = append(lines, s.Body...)
		for _, g := range s.Groups {
			lines = append(lines, g.Heading)
			lines = append(lines, g.Lines...)
		}
	}
	return strings.Join(lines, "\n")
}

// Unreleased returns the Unreleased section, or nil when the heading is absent.
func (d *Document) Unreleased() *Section {
	for _, s := range d.Sections {
		if s.IsUnreleased() {
			return s
		}
	}
	return nil
}

// IsUnreleased reports whether s is the level-2 Unreleased section.
func (s *Section) IsUnreleased() bool {
	return s.Level == 2 && strings.EqualFold(s.Name, UnreleasedName)
}

// Group returns the group whose heading names the given section, or nil.
func (s *Section) Group(name string) *Group {
	for _, g := range s.Groups {
		if strings.EqualFold(g.Name, name) {
			return g
		}
	}
	return nil
}

// EntryLines returns every list-item line of the section in file order.
func (s *Section) EntryLines() []string {
	var out []string
	for _, line := range s.allLines() {
		if isListItem(line) {
			out = append(out, line)
		}
	}
	return out
}

func (s *Section) allLines() []string {
	lines := append([]string(nil), s.Body...)
	for _, g := range s.Groups {
		lines = append(lines, g.Lines...)
	}
	return lines
}

func newSection(line string, level, lineNum int) *Section {
	text := headingText(line)
	s := &Section{Heading: line, Level: level, Name: text, Line: lineNum}
	if m := headingTitlePattern.FindStringSubmatch(text); m != nil {
		s.Name = m[1]
		s.Date = m[2]
	}
	return s
}

// headingLevel returns the ATX heading level of line, or 0.
func headingLevel(line string) int {
	line = strings.TrimRight(line, "\r")
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

func headingText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimRight(line, "\r"), "#"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isListItem reports whether line is a bullet entry.
func isListItem(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// entryText strips indentation, the list marker and the line ending.
func entryText(line string) string {
	trimmed := strings.TrimLeft(strings.TrimRight(line, "\r"), " \t")
	return trimmed[2:]
}

// belongsTo reports whether an entry line is owned by the PR, either through a
// reference link or through a marker carrying its number.
func belongsTo(line string, pr int) bool {
	if m, ok := marker.Parse(line); ok && m.PRNumber == pr {
		return true
	}
	return referencesPR(line, pr)
}

// referencesPR matches "[#n](" links and ".../pull/n" URLs.
func referencesPR(line string, pr int) bool {
	num := strconv.Itoa(pr)
	if strings.Contains(line, "[#"+num+"](") {
		return true
	}

	needle := "/pull/" + num
	for offset := 0; ; {
		i := strings.Index(line[offset:], needle)
		if i < 0 {
			return false
		}
		end := offset + i + len(needle)
		if end == len(line) || line[end] < '0' || line[end] > '9' {
			return true
		}
		offset = end
	}
}

// referencedPRs lists the PR numbers an entry line points at.
func referencedPRs(line string) []int {
	var prs []int
	if m, ok := marker.Parse(line); ok {
		prs = append(prs, m.PRNumber)
	}
	for _, pattern := range []*regexp.Regexp{prLinkPattern, pullURLPattern} {
		for _, match := range pattern.FindAllStringSubmatch(line, -1) {
			if n, err := strconv.Atoi(match[1]); err == nil {
				prs = append(prs, n)
			}
		}
	}
	return prs
}
