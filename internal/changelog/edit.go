package changelog

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ariel-frischer/autochangelog/internal/conventional"
)

// Apply writes entries into the Unreleased section of content.
//
// Each entry ends up as exactly one line for its PR: every line the PR already
// owns is removed and the new line is appended at the bottom of its group.
// Missing "## [Unreleased]" headings and "### <section>" groups are created,
// and a group left without content by the removal is dropped.
// Changed is false when the result is byte-identical to content.
func Apply(content string, entries []conventional.Entry, opts ApplyOptions) ApplyResult {
	doc := Parse(content)
	section := doc.ensureUnreleased()

	order := lo.Uniq(lo.Map(entries, func(e conventional.Entry, _ int) string {
		return e.Section
	}))
	bySection := lo.GroupBy(entries, func(e conventional.Entry) string {
		return e.Section
	})

	for _, name := range order {
		for _, e := range bySection[name] {
			doc.place(section, name, RenderLine(e, opts.Mark)+doc.eol, e.PRNumber)
		}
	}

	out := doc.String()
	result := ApplyResult{Content: out, Changed: out != content}
	if result.Changed {
		result.Added = len(entries)
	}
	return result
}

// RemoveEntry deletes every entry line owned by the PR from all sections.
func RemoveEntry(content string, pr int) RemoveResult {
	doc := Parse(content)

	removed := 0
	for _, s := range doc.Sections {
		removed += s.dropPR(pr, nil)
	}

	out := doc.String()
	return RemoveResult{Content: out, Changed: out != content, Removed: removed}
}

// place removes every line the PR owns in section and appends line to the
// bottom of the named group.
func (d *Document) place(section *Section, groupName, line string, pr int) {
	group := section.Group(groupName)
	section.dropPR(pr, group)
	if group == nil {
		group = section.addGroup(groupName, d.eol)
	}
	group.insert(line)
}

// ensureUnreleased returns the Unreleased section, creating it right after the
// preamble when missing.
func (d *Document) ensureUnreleased() *Section {
	if s := d.Unreleased(); s != nil {
		return s
	}

	s := &Section{
		Heading: UnreleasedHeading + d.eol,
		Level:   2,
		Name:    UnreleasedName,
		Body:    []string{d.eol},
	}

	n := len(d.Preamble)
	switch {
	case n == 1 && len(d.Sections) == 0 && d.Preamble[0] == "":
		d.Preamble = nil
		s.Body = []string{""}
	case n > 0 && len(d.Sections) == 0 && d.Preamble[n-1] == "":
		// The last preamble element is what follows the final newline. It
		// becomes the blank line above the heading and the section takes over
		// the final newline.
		d.Preamble[n-1] = d.eol
		s.Body = []string{""}
	case n > 0 && !isBlank(d.Preamble[n-1]):
		d.Preamble = append(d.Preamble, d.eol)
	}
	d.Sections = slices.Insert(d.Sections, 0, s)
	return s
}

// dropPR removes list items owned by pr from the section and returns the
// number of removed lines. A group other than keep that had a line removed and
// holds only blank lines afterwards is dropped with its heading.
func (s *Section) dropPR(pr int, keep *Group) int {
	removed := 0
	filter := func(lines []string) []string {
		out := lines[:0]
		for _, line := range lines {
			if isListItem(line) && belongsTo(line, pr) {
				removed++
				continue
			}
			out = append(out, line)
		}
		return out
	}

	s.Body = filter(s.Body)
	groups := s.Groups[:0]
	for _, g := range s.Groups {
		before := removed
		g.Lines = filter(g.Lines)
		if removed == before || g == keep || !lo.EveryBy(g.Lines, isBlank) {
			groups = append(groups, g)
			continue
		}

		// The block above normally ends with the blank line that separated it
		// from the dropped heading. Without one, the dropped blanks take its
		// place so the final newline survives.
		prev := &s.Body
		if n := len(groups); n > 0 {
			prev = &groups[n-1].Lines
		}
		if n := len(*prev); n == 0 || !isBlank((*prev)[n-1]) {
			*prev = append(*prev, g.Lines...)
		}
	}
	s.Groups = groups
	return removed
}

// addGroup appends a "### name" group to the section. Trailing blank lines of
// the previous block move below the new group so spacing before the next
// heading is kept, and one blank line separates the new heading from the
// content above it.
func (s *Section) addGroup(name, eol string) *Group {
	tail := &s.Body
	if n := len(s.Groups); n > 0 {
		tail = &s.Groups[n-1].Lines
	}

	lines := *tail
	trailing := 0
	for trailing < len(lines) && isBlank(lines[len(lines)-1-trailing]) {
		trailing++
	}
	cut := len(lines) - trailing

	g := &Group{Heading: "### " + name + eol, Name: name}
	g.Lines = append(g.Lines, lines[cut:]...)

	kept := append(lines[:cut:cut], eol)
	*tail = kept

	s.Groups = append(s.Groups, g)
	return g
}

// insert adds line after the last content line of the group. Trailing blank
// lines and link reference definitions stay below it.
func (g *Group) insert(line string) {
	at := 0
	for i, l := range g.Lines {
		if !isBlank(l) && !linkDefinitionPattern.MatchString(l) {
			at = i + 1
		}
	}
	g.Lines = slices.Insert(g.Lines, at, line)
}
