package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/autochangelog/internal/changelog"
	"github.com/ariel-frischer/autochangelog/internal/command"
)

func TestPolicy_Decide(t *testing.T) {
	auto := Policy{
		DefaultBehavior: BehaviorAuto,
		SkipLabels:      []string{"skip-changelog", "deps/*"},
		PreserveEdited:  true,
	}
	optIn := Policy{
		DefaultBehavior: BehaviorOptIn,
		OptInCheckbox:   "Add to changelog",
		PreserveEdited:  true,
	}

	tests := map[string]struct {
		policy Policy
		input  Input
		want   Action
	}{
		"auto without signals generates": {
			policy: auto,
			input:  Input{State: changelog.StateNone},
			want:   ActionGenerate,
		},
		"exact skip label": {
			policy: auto,
			input:  Input{State: changelog.StateNone, Labels: []string{"bug", "skip-changelog"}},
			want:   ActionSkip,
		},
		"skip label is case sensitive": {
			policy: auto,
			input:  Input{State: changelog.StateNone, Labels: []string{"Skip-Changelog"}},
			want:   ActionGenerate,
		},
		"glob skip label": {
			policy: auto,
			input:  Input{State: changelog.StateNone, Labels: []string{"deps/go"}},
			want:   ActionSkip,
		},
		"skip label beats regenerate": {
			policy: auto,
			input: Input{
				State:   changelog.StateNone,
				Labels:  []string{"skip-changelog"},
				Comment: &command.Command{Kind: command.Regenerate},
			},
			want: ActionSkip,
		},
		"skip command beats label check": {
			policy: auto,
			input:  Input{State: changelog.StateNone, Comment: &command.Command{Kind: command.Skip}},
			want:   ActionSkip,
		},
		"auto preserves edited line": {
			policy: auto,
			input:  Input{State: changelog.StateAutoEdited},
			want:   ActionPreserve,
		},
		"opt-in without checkbox skips": {
			policy: optIn,
			input:  Input{State: changelog.StateNone, Body: "- [ ] Add to changelog"},
			want:   ActionSkip,
		},
		"opt-in with checkbox generates": {
			policy: optIn,
			input:  Input{State: changelog.StateNone, Body: "Summary\n\n- [x] Add to changelog\n"},
			want:   ActionGenerate,
		},
		"opt-in with custom command": {
			policy: optIn,
			input: Input{
				State:       changelog.StateNone,
				Description: &command.Command{Kind: command.Custom, Text: "x"},
			},
			want: ActionCustom,
		},
		"opt-in with regenerate comment": {
			policy: optIn,
			input:  Input{State: changelog.StateAutoEdited, Comment: &command.Command{Kind: command.Regenerate}},
			want:   ActionRegenerate,
		},
		"opt-in with checkbox preserves edited": {
			policy: optIn,
			input:  Input{State: changelog.StateManual, Body: "* [X] add to changelog"},
			want:   ActionPreserve,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.policy.Decide(tt.input)
			assert.Equal(t, tt.want, got.Action, got.Reason)
		})
	}
}

func TestChecked(t *testing.T) {
	tests := map[string]struct {
		body string
		want bool
	}{
		"checked":         {body: "- [x] Add to changelog", want: true},
		"upper x":         {body: "- [X] Add to changelog", want: true},
		"star bullet":     {body: "  * [x]   Add to changelog  ", want: true},
		"crlf":            {body: "intro\r\n- [x] Add to changelog\r\n", want: true},
		"unchecked":       {body: "- [ ] Add to changelog", want: false},
		"other label":     {body: "- [x] Add tests", want: false},
		"not a list item": {body: "[x] Add to changelog", want: false},
		"empty body":      {body: "", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checked(tt.body, DefaultOptInCheckbox))
		})
	}
}
