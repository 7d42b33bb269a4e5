package resolve

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/command"
)

// Behavior selects how PRs without explicit signals are handled.
type Behavior string

const (
	// BehaviorAuto records every PR unless a command or label says otherwise.
	BehaviorAuto Behavior = "auto"
	// BehaviorOptIn records a PR only when its description ticks the opt-in
	// checkbox or a regenerate/custom command asks for an entry.
	BehaviorOptIn Behavior = "opt-in"
)

// DefaultOptInCheckbox is the checkbox label looked for in opt-in mode.
const DefaultOptInCheckbox = "Add to changelog"

// Policy wraps Resolve with configured skip rules.
type Policy struct {
	DefaultBehavior Behavior
	// SkipLabels are exact, case-sensitive label names or glob patterns.
	SkipLabels     []string
	OptInCheckbox  string
	PreserveEdited bool
}

// Input gathers the per-PR signals a decision depends on.
type Input struct {
	State       changelog.EntryState
	Body        string
	Labels      []string
	Description *command.Command
	Comment     *command.Command
}

// Decide resolves the action for a PR. Explicit skip commands are checked
// first, then skip labels, then the opt-in gate, then the priority chain.
func (p Policy) Decide(in Input) Decision {
	if in.Comment.Is(command.Skip) || in.Description.Is(command.Skip) {
		return Resolve(in.State, in.Description, in.Comment, p.PreserveEdited)
	}

	if label, ok := p.matchSkipLabel(in.Labels); ok {
		return Decision{Action: ActionSkip, Reason: fmt.Sprintf("label %q matches skip-labels", label)}
	}

	if p.DefaultBehavior == BehaviorOptIn && !p.optedIn(in) {
		return Decision{Action: ActionSkip, Reason: "opt-in checkbox not checked"}
	}

	return Resolve(in.State, in.Description, in.Comment, p.PreserveEdited)
}

func (p Policy) matchSkipLabel(labels []string) (string, bool) {
	for _, pattern := range p.SkipLabels {
		if pattern == "" {
			continue
		}
		if lo.Contains(labels, pattern) {
			return pattern, true
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if label, ok := lo.Find(labels, g.Match); ok {
			return label, true
		}
	}
	return "", false
}

func (p Policy) optedIn(in Input) bool {
	if in.Comment.Is(command.Regenerate) || in.Comment.Is(command.Custom) || in.Description.Is(command.Custom) {
		return true
	}
	return Checked(in.Body, p.checkbox())
}

func (p Policy) checkbox() string {
	if p.OptInCheckbox == "" {
		return DefaultOptInCheckbox
	}
	return p.OptInCheckbox
}

// Checked reports whether body contains a ticked task list item with the given
// label, e.g. "- [x] Add to changelog".
func Checked(body, label string) bool {
	label = strings.TrimSpace(label)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 2 || (line[0] != '-' && line[0] != '*') {
			continue
		}
		rest := strings.TrimSpace(line[1:])
		if !strings.HasPrefix(rest, "[x]") && !strings.HasPrefix(rest, "[X]") {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rest[3:]), label) {
			return true
		}
	}
	return false
}
