// Package command recognizes changelog directives written by humans in a PR
// description or in PR comments: skip, regenerate, or custom entry text.
package command

import (
	"sort"
	"strings"
	"time"
)

// DefaultTrigger is the phrase a directive line must start with.
const DefaultTrigger = "/changelog"

// Kind identifies a directive.
type Kind int

const (
	// Skip removes the PR's entry and stops generation.
	Skip Kind = iota + 1
	// Regenerate rebuilds the entry from the title even if it was edited.
	Regenerate
	// Custom replaces the entry with free text.
	Custom
)

// String returns the directive name.
func (k Kind) String() string {
	switch k {
	case Skip:
		return "skip"
	case Regenerate:
		return "regenerate"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Command is a parsed directive. Text is only set for Custom.
type Command struct {
	Kind Kind
	Text string
}

// Is reports whether c is non-nil and of kind k.
func (c *Command) Is(k Kind) bool {
	return c != nil && c.Kind == k
}

// Comment is a PR conversation comment.
type Comment struct {
	Body      string
	CreatedAt time.Time
}

// Parser scans text for directive lines introduced by Trigger.
type Parser struct {
	Trigger string
}

// NewParser creates a Parser, falling back to DefaultTrigger for an empty trigger.
func NewParser(trigger string) *Parser {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return &Parser{Trigger: trigger}
}

// ParseText returns the first directive line found in text, or nil.
func (p *Parser) ParseText(text string) *Command {
	for _, line := range strings.Split(text, "\n") {
		if cmd := p.parseLine(line); cmd != nil {
			return cmd
		}
	}
	return nil
}

// ParseComments returns the first directive of the most recent comment that
// contains one. Comments are never merged; older comments only matter when every
// newer comment is free of directives.
func (p *Parser) ParseComments(comments []Comment) *Command {
	sorted := make([]Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, c := range sorted {
		if cmd := p.ParseText(c.Body); cmd != nil {
			return cmd
		}
	}
	return nil
}

func (p *Parser) parseLine(line string) *Command {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, p.Trigger) {
		return nil
	}

	switch line {
	case p.Trigger + " skip", p.Trigger + ": skip":
		return &Command{Kind: Skip}
	case p.Trigger + " regenerate", p.Trigger + ": regenerate":
		return &Command{Kind: Regenerate}
	}

	rest := line[len(p.Trigger):]
	// "/changelogfoo" is not a directive; the trigger must end at a separator.
	if rest == "" || !(rest[0] == ':' || rest[0] == ' ' || rest[0] == '\t') {
		return nil
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if rest == "" || rest == "skip" || rest == "regenerate" {
		return nil
	}
	return &Command{Kind: Custom, Text: rest}
}
