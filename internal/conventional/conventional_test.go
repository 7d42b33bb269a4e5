package conventional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		title  string
		want   Entry
		wantOK bool
	}{
		"type with scope": {
			title: "feat(auth): add two-factor authentication",
			want: Entry{
				Type:        "feat",
				Scope:       "auth",
				Description: "add two-factor authentication",
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Features",
			},
			wantOK: true,
		},
		"type without scope": {
			title: "fix: handle empty body",
			want: Entry{
				Type:        "fix",
				Description: "handle empty body",
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Bug Fixes",
			},
			wantOK: true,
		},
		"breaking change marker": {
			title: "refactor(api)!: drop v1 endpoints",
			want: Entry{
				Type:        "refactor",
				Scope:       "api",
				Description: "drop v1 endpoints",
				Breaking:    true,
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Refactoring",
			},
			wantOK: true,
		},
		"case insensitive type": {
			title: "FEAT: shout",
			want: Entry{
				Type:        "feat",
				Description: "shout",
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Features",
			},
			wantOK: true,
		},
		"description keeps colons": {
			title: "docs: note: read this",
			want: Entry{
				Type:        "docs",
				Description: "note: read this",
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Documentation",
			},
			wantOK: true,
		},
		"feature alias": {
			title: "feature(ui): dark mode",
			want: Entry{
				Type:        "feature",
				Scope:       "ui",
				Description: "dark mode",
				PRNumber:    123,
				PRURL:       "https://github.com/o/r/pull/123",
				Section:     "Features",
			},
			wantOK: true,
		},
		"unknown type": {
			title:  "wip: something",
			wantOK: false,
		},
		"missing space after colon": {
			title:  "feat:no space",
			wantOK: false,
		},
		"plain title": {
			title:  "Update README",
			wantOK: false,
		},
		"empty title": {
			title:  "",
			wantOK: false,
		},
	}

	p := NewParser(nil)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := p.Parse(tt.title, 123, "https://github.com/o/r/pull/123")
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSectionMap_Merge(t *testing.T) {
	t.Parallel()

	base := DefaultSections()
	merged := base.Merge(map[string]string{"FEAT": "Added", "chore": ""})

	assert.Equal(t, "Added", merged.Section("feat"))
	assert.Equal(t, "Chores", merged.Section("chore"), "empty override is ignored")
	assert.Equal(t, "Features", base.Section("feat"), "base table is not mutated")
	assert.Equal(t, DefaultSection, merged.Section("unknown"))
}

func TestNewParser_CopiesTable(t *testing.T) {
	t.Parallel()

	table := SectionMap{"feat": "New"}
	p := NewParser(table)
	table["feat"] = "Mutated"

	entry, ok := p.Parse("feat: x", 1, "")
	require.True(t, ok)
	assert.Equal(t, "New", entry.Section)

	entry, ok = p.Parse("fix: y", 1, "")
	require.True(t, ok)
	assert.Equal(t, DefaultSection, entry.Section, "matched type without mapping falls back")
}

func TestCustom(t *testing.T) {
	t.Parallel()

	e := Custom("  Improved error handling ", 7, "u")
	assert.Equal(t, Entry{Description: "Improved error handling", PRNumber: 7, PRURL: "u", Section: "Changes"}, e)
}
