// Package marker fingerprints changelog entry text and encodes the fingerprint,
// together with the owning PR number, as an HTML comment that markdown renderers
// hide: `<!-- ac:<8 hex>:<pr> -->`.
package marker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// HashLength is the number of hex characters kept from the digest.
const HashLength = 8

var (
	// markerPattern matches one marker, including the whitespace before it.
	markerPattern = regexp.MustCompile(`[ \t]*<!-- ac:([0-9a-f]{8}):([0-9]+) -->`)
)

// Marker is the decoded tracking annotation of an entry line.
type Marker struct {
	Hash     string
	PRNumber int
}

// String renders the marker in its wire form.
func (m Marker) String() string {
	return fmt.Sprintf("<!-- ac:%s:%d -->", m.Hash, m.PRNumber)
}

// Strip removes every marker from text.
func Strip(text string) string {
	return markerPattern.ReplaceAllString(text, "")
}

// ComputeHash fingerprints the visible part of text. Markers and line-ending
// differences never change the result.
func ComputeHash(text string) string {
	normalized := strings.ReplaceAll(Strip(text), "\r\n", "\n")
	normalized = strings.TrimSpace(normalized)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:HashLength]
}

// BuildMarkedLine returns text with any previous marker replaced by a fresh one
// for prNumber. Applying it to its own output is a no-op.
func BuildMarkedLine(text string, prNumber int) string {
	visible := strings.TrimSpace(Strip(text))
	m := Marker{Hash: ComputeHash(visible), PRNumber: prNumber}
	return visible + " " + m.String()
}

// Parse extracts the first marker in line.
func Parse(line string) (Marker, bool) {
	match := markerPattern.FindStringSubmatch(line)
	if match == nil {
		return Marker{}, false
	}
	pr, err := strconv.Atoi(match[2])
	if err != nil {
		return Marker{}, false
	}
	return Marker{Hash: match[1], PRNumber: pr}, true
}
