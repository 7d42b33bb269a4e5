// Package resolve decides the single action taken for a PR in one run.
//
// Resolve is the pure priority chain over the detected entry state and the
// parsed commands. Policy layers the configured skip labels and the opt-in mode
// on top of it.
package resolve

import (
	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/command"
)

// Action is the operation the editor executes for a PR.
type Action string

const (
	ActionSkip       Action = "skip"
	ActionPreserve   Action = "preserve"
	ActionGenerate   Action = "generate"
	ActionRegenerate Action = "regenerate"
	ActionCustom     Action = "custom"
)

// Decision is the resolved outcome for one PR.
type Decision struct {
	Action Action
	Reason string
	// Mark tells the editor to append a tracking marker to rendered lines.
	Mark bool
	// Text is the custom entry text, only set for ActionCustom.
	Text string
}

// Writes reports whether the decision may change the document.
func (d Decision) Writes() bool {
	return d.Action != ActionPreserve
}

// Resolve applies the priority chain. The first matching rule wins:
//
//  1. skip in the latest comment
//  2. skip in the description
//  3. regenerate in the latest comment (overrides edit preservation)
//  4. custom text in the description
//  5. custom text in the latest comment
//  6. generate when no line exists or the generated line is untouched
//  7. preserve edited or manual lines unless preserveEdited is off
//  8. generate
func Resolve(state changelog.EntryState, description, comment *command.Command, preserveEdited bool) Decision {
	switch {
	case comment.Is(command.Skip):
		return Decision{Action: ActionSkip, Reason: "skip requested in comment"}
	case description.Is(command.Skip):
		return Decision{Action: ActionSkip, Reason: "skip requested in description"}
	case comment.Is(command.Regenerate):
		return Decision{Action: ActionRegenerate, Reason: "regenerate requested in comment", Mark: true}
	case description.Is(command.Custom):
		return Decision{Action: ActionCustom, Reason: "custom text in description", Text: description.Text}
	case comment.Is(command.Custom):
		return Decision{Action: ActionCustom, Reason: "custom text in comment", Text: comment.Text}
	}

	switch state {
	case changelog.StateNone:
		return Decision{Action: ActionGenerate, Reason: "no existing entry", Mark: true}
	case changelog.StateAutoUntouched:
		return Decision{Action: ActionGenerate, Reason: "existing entry is unedited", Mark: true}
	case changelog.StateAutoEdited, changelog.StateManual:
		if preserveEdited {
			return Decision{Action: ActionPreserve, Reason: "entry was written or edited by hand (" + state.String() + ")"}
		}
		return Decision{Action: ActionGenerate, Reason: "edit preservation disabled", Mark: true}
	}

	return Decision{Action: ActionGenerate, Reason: "default", Mark: true}
}
