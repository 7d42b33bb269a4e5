package changelog

import (
	"github.com/ariel-frischer/autochangelog/internal/marker"
)

// Detect classifies the Unreleased entry of a PR in raw changelog content.
func Detect(content string, pr int) Detection {
	return Parse(content).Detect(pr)
}

// Detect classifies the Unreleased entry of a PR.
//
// A list item belongs to the PR when it links to it or carries a marker with its
// number. The first such line decides the state. When several lines belong to
// the PR the state is StateManual: duplicates mean someone edited the section by
// hand, and regeneration must not guess which line is authoritative.
func (d *Document) Detect(pr int) Detection {
	section := d.Unreleased()
	if section == nil {
		return Detection{State: StateNone}
	}

	var det Detection
	for _, line := range section.EntryLines() {
		if !belongsTo(line, pr) {
			continue
		}
		det.Matches++
		if det.Matches > 1 {
			continue
		}
		det.Line = trimEOL(line)
		det.State = classify(line, pr, &det)
	}

	if det.Matches > 1 {
		det.State = StateManual
	}
	return det
}

func classify(line string, pr int, det *Detection) EntryState {
	m, ok := marker.Parse(line)
	if !ok || m.PRNumber != pr {
		return StateManual
	}

	det.StoredHash = m.Hash
	if marker.ComputeHash(entryText(line)) == m.Hash {
		return StateAutoUntouched
	}
	return StateAutoEdited
}

func trimEOL(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
