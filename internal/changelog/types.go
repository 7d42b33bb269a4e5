package changelog

// EntryState classifies the existing changelog line of a PR.
type EntryState int

const (
	// StateNone means no line for the PR exists in the Unreleased section.
	StateNone EntryState = iota
	// StateAutoUntouched means a marked line exists and its text still matches the stored hash.
	StateAutoUntouched
	// StateAutoEdited means a marked line exists but its text was changed after generation.
	StateAutoEdited
	// StateManual means the PR is referenced by a line without a marker.
	StateManual
	// StateSkipped is an outcome label set after a skip action; it is never detected.
	StateSkipped
)

// String returns the canonical upper-case state name.
func (s EntryState) String() string {
	switch s {
	case StateNone:
		return "NONE"
	case StateAutoUntouched:
		return "AUTO_UNTOUCHED"
	case StateAutoEdited:
		return "AUTO_EDITED"
	case StateManual:
		return "MANUAL"
	case StateSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Document is a parsed changelog. Lines keep their original bytes, including a
// trailing "\r" on CRLF files, so String reproduces the input exactly.
type Document struct {
	// Preamble holds every line before the first level-2 heading.
	Preamble []string
	// Sections are the release sections in file order.
	Sections []*Section

	eol string // "\r" for CRLF documents, used for lines the editor creates
}

// Section is a release section introduced by a level-2 heading (or a later
// level-1 heading, which also ends the previous section).
type Section struct {
	Heading string
	Level   int
	Name    string // "Unreleased", "1.2.0", or the raw heading text
	Date    string
	Line    int // 1-indexed line of the heading as parsed
	Body    []string
	Groups  []*Group
}

// Group is a level-3 sub-section such as "### Features".
type Group struct {
	Heading string
	Name    string
	Line    int
	Lines   []string
}

// Detection is the result of looking up a PR in the Unreleased section.
type Detection struct {
	State EntryState
	// Line is the first matching raw line, without its line ending.
	Line string
	// StoredHash is the hash embedded in the line's marker, if any.
	StoredHash string
	// Matches counts the lines that belong to the PR.
	Matches int
}

// ApplyOptions controls how entries are rendered.
type ApplyOptions struct {
	// Mark appends a tracking marker to each rendered line.
	Mark bool
}

// ApplyResult reports the outcome of Apply.
type ApplyResult struct {
	Content string
	Changed bool
	Added   int
}

// RemoveResult reports the outcome of RemoveEntry.
type RemoveResult struct {
	Content string
	Changed bool
	Removed int
}
