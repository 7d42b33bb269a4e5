package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		payload  string
		expected Event
	}{
		"pull_request": {
			payload:  `{"number": 7, "pull_request": {"number": 7, "head": {"ref": "feat/x"}}, "repository": {"full_name": "o/r"}}`,
			expected: Event{PRNumber: 7, Repository: "o/r", HeadRef: "feat/x"},
		},
		"issue_comment on pr": {
			payload:  `{"issue": {"number": 9, "pull_request": {"url": "u"}}, "repository": {"full_name": "o/r"}}`,
			expected: Event{PRNumber: 9, Repository: "o/r"},
		},
		"issue_comment on issue": {
			payload:  `{"issue": {"number": 9}, "repository": {"full_name": "o/r"}}`,
			expected: Event{Repository: "o/r"},
		},
		"push": {
			payload:  `{"ref": "refs/heads/main", "repository": {"full_name": "o/r"}}`,
			expected: Event{Repository: "o/r"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ev, err := Load(writeEvent(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *ev)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "loading event payload")

	_, err = Load(writeEvent(t, "{not json"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	path := writeEvent(t, `{"pull_request": {"number": 3}}`)
	env := map[string]string{
		EnvEventPath:  path,
		EnvEventName:  "pull_request",
		EnvRepository: "fallback/repo",
	}

	ev, err := Discover(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, 3, ev.PRNumber)
	assert.Equal(t, "fallback/repo", ev.Repository)
	assert.Equal(t, "pull_request", ev.Name)
}

func TestDiscover_NoPayload(t *testing.T) {
	ev, err := Discover(func(k string) string {
		if k == EnvRepository {
			return "o/r"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, &Event{Repository: "o/r"}, ev)
}
