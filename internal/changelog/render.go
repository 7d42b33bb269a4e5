package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/autochangelog/internal/conventional"
	"github.com/ariel-frischer/autochangelog/internal/marker"
)

// UnreleasedHeading is the heading synthesized when a document lacks one.
const UnreleasedHeading = "## [Unreleased]"

// templateHeader is written when the changelog file does not exist yet.
const templateHeader = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`

// NewTemplate returns the skeleton of a new changelog with an empty Unreleased section.
func NewTemplate() string {
	return templateHeader + UnreleasedHeading + "\n"
}

// RenderLine renders an entry as a list item:
//
//	- **scope**: description ([#123](url)) <!-- ac:hash:123 -->
//
// The scope prefix is omitted when empty and the marker only appears when mark is set.
func RenderLine(e conventional.Entry, mark bool) string {
	var b strings.Builder
	if e.Scope != "" {
		fmt.Fprintf(&b, "**%s**: ", e.Scope)
	}
	b.WriteString(strings.TrimSpace(e.Description))
	fmt.Fprintf(&b, " ([#%d](%s))", e.PRNumber, e.PRURL)

	text := b.String()
	if mark {
		text = marker.BuildMarkedLine(text, e.PRNumber)
	}
	return "- " + text
}
