package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/autochangelog/internal/conventional"
	"github.com/ariel-frischer/autochangelog/internal/marker"
)

func TestRenderLine(t *testing.T) {
	tests := map[string]struct {
		entry conventional.Entry
		want  string
	}{
		"without scope": {
			entry: conventional.Entry{Description: "add login", PRNumber: 3, PRURL: "https://h/pull/3"},
			want:  "- add login ([#3](https://h/pull/3))",
		},
		"with scope": {
			entry: conventional.Entry{Scope: "auth", Description: "add login", PRNumber: 3, PRURL: "https://h/pull/3"},
			want:  "- **auth**: add login ([#3](https://h/pull/3))",
		},
		"description is trimmed": {
			entry: conventional.Entry{Description: "  spaced  ", PRNumber: 1, PRURL: "u"},
			want:  "- spaced ([#1](u))",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderLine(tt.entry, false))
		})
	}
}

func TestRenderLine_Marked(t *testing.T) {
	e := conventional.Entry{Scope: "api", Description: "add", PRNumber: 8, PRURL: "u"}
	line := RenderLine(e, true)

	m, ok := marker.Parse(line)
	assert.True(t, ok)
	assert.Equal(t, 8, m.PRNumber)
	assert.Equal(t, marker.ComputeHash("**api**: add ([#8](u))"), m.Hash)
	assert.Equal(t, "- **api**: add ([#8](u)) "+m.String(), line)
}

func TestNewTemplate(t *testing.T) {
	tmpl := NewTemplate()
	doc := Parse(tmpl)

	assert.NotNil(t, doc.Unreleased())
	assert.Equal(t, "# Changelog", doc.Preamble[0])
	assert.False(t, Check(tmpl).HasErrors())
}
