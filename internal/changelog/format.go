package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/autochangelog/internal/marker"
)

// StateStyle defines the color and icon for an entry state.
type StateStyle struct {
	Color *color.Color
	Icon  string
}

// stateStyles maps entry states to their terminal styling.
var stateStyles = map[EntryState]StateStyle{
	StateNone:          {Color: color.New(color.FgHiBlack), Icon: "·"},
	StateAutoUntouched: {Color: color.New(color.FgGreen), Icon: "✓"},
	StateAutoEdited:    {Color: color.New(color.FgYellow), Icon: "~"},
	StateManual:        {Color: color.New(color.FgBlue), Icon: "✎"},
	StateSkipped:       {Color: color.New(color.FgHiBlack), Icon: "✗"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatDetection writes the detected state of a PR entry.
func FormatDetection(pr int, det Detection, w io.Writer, opts FormatOptions) error {
	style := stateStyles[det.State]
	label := fmt.Sprintf("PR #%d: %s", pr, det.State)
	if det.Matches > 1 {
		label += fmt.Sprintf(" (%d lines)", det.Matches)
	}

	if opts.Plain {
		if _, err := fmt.Fprintln(w, label); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "%s %s\n", colored(style.Icon), colored(label)); err != nil {
			return err
		}
	}

	if det.Line == "" {
		return nil
	}
	width := resolveWidth(opts.MaxWidth)
	prefix := "  "
	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapText(marker.Strip(det.Line), width-len(prefix), "    ")); err != nil {
		return err
	}
	if det.StoredHash != "" {
		_, err := fmt.Fprintf(w, "  hash: %s\n", det.StoredHash)
		return err
	}
	return nil
}

// FormatUnreleased writes the groups and entries of the Unreleased section.
// Markers are hidden and each entry is tagged with its detected state.
func FormatUnreleased(content string, w io.Writer, opts FormatOptions) error {
	doc := Parse(content)
	section := doc.Unreleased()
	if section == nil {
		return fmt.Errorf("no %q section found", UnreleasedHeading)
	}

	width := resolveWidth(opts.MaxWidth)
	if err := writeHeader(UnreleasedName, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := writeEntries(section.Body, w, opts, width); err != nil {
		return err
	}
	for _, g := range section.Groups {
		if err := writeGroup(g, w, opts, width); err != nil {
			return fmt.Errorf("formatting group %s: %w", g.Name, err)
		}
	}
	return nil
}

// writeHeader writes the section header line.
func writeHeader(name string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", name)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(name))
	return err
}

func writeGroup(g *Group, w io.Writer, opts FormatOptions, width int) error {
	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", g.Name); err != nil {
			return err
		}
	} else {
		bold := color.New(color.Bold, color.FgCyan).SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s\n", bold(g.Name)); err != nil {
			return err
		}
	}
	return writeEntries(g.Lines, w, opts, width)
}

// writeEntries writes each list item with its state icon.
func writeEntries(lines []string, w io.Writer, opts FormatOptions, width int) error {
	for _, line := range lines {
		if !isListItem(line) {
			continue
		}
		if err := writeEntry(line, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(line string, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := strings.TrimSpace(marker.Strip(entryText(line)))

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	style := stateStyles[lineState(line)]
	wrapped := wrapText(text, width-len(prefix)-2, "      ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(style.Icon), wrapped)
	return err
}

// lineState classifies a single line without considering other lines.
func lineState(line string) EntryState {
	m, ok := marker.Parse(line)
	if !ok {
		return StateManual
	}
	var det Detection
	return classify(line, m.PRNumber, &det)
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// Summary returns a brief one-line summary of an entry line.
func Summary(line string, maxLen int) string {
	return truncateText(strings.TrimSpace(marker.Strip(trimEOL(line))), maxLen)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen < 4 || len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
