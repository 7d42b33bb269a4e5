// Package event extracts the pull request a GitHub Actions run is about from the
// event payload the runner writes to $GITHUB_EVENT_PATH.
package event

import (
	"fmt"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables set by the GitHub Actions runner.
const (
	EnvEventPath  = "GITHUB_EVENT_PATH"
	EnvEventName  = "GITHUB_EVENT_NAME"
	EnvRepository = "GITHUB_REPOSITORY"
)

// Event is the subset of a workflow event the tool needs.
type Event struct {
	Name       string
	PRNumber   int
	Repository string
	HeadRef    string
}

// Load reads an event payload. pull_request and pull_request_target events
// carry the PR under "pull_request"; issue_comment events carry it under
// "issue" and only refer to a PR when "issue.pull_request" is present.
func Load(path string) (*Event, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("loading event payload %s: %w", path, err)
	}

	ev := &Event{
		Repository: k.String("repository.full_name"),
		HeadRef:    k.String("pull_request.head.ref"),
	}
	switch {
	case k.Exists("pull_request.number"):
		ev.PRNumber = k.Int("pull_request.number")
	case k.Exists("issue.pull_request"):
		ev.PRNumber = k.Int("issue.number")
	case k.Exists("number"):
		ev.PRNumber = k.Int("number")
	}
	return ev, nil
}

// Discover builds the event from the runner environment. Without an event
// payload only the repository is known.
func Discover(getenv func(string) string) (*Event, error) {
	ev := &Event{}
	if path := getenv(EnvEventPath); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		ev = loaded
	}

	ev.Name = getenv(EnvEventName)
	if ev.Repository == "" {
		ev.Repository = getenv(EnvRepository)
	}
	return ev, nil
}
