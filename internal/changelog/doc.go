// Package changelog reads and rewrites the "Unreleased" section of a Keep a
// Changelog style CHANGELOG.md.
//
// This package implements:
//   - a line-oriented document model (preamble, level-2 sections, level-3 groups)
//     that serializes back to the exact input bytes
//   - entry state detection for a PR (untouched, edited, manual, absent)
//   - idempotent application and removal of PR entries
//   - structural checks and terminal formatting of the Unreleased section
//
// Only the Unreleased section is ever mutated by Apply; everything else in the
// file is passed through verbatim.
package changelog
