package config

import (
	"sort"

	"github.com/samber/lo"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeEnum
	TypeList
	TypeMap
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path          string          // Key name (e.g., "changelog_path")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Secret        bool            // Value is masked in output
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_path":      {Path: "changelog_path", Type: TypeString, Description: "Changelog file to maintain"},
	"auto_categorize":     {Path: "auto_categorize", Type: TypeBool, Description: "Generate entries from conventional commit PR titles"},
	"comment_trigger":     {Path: "comment_trigger", Type: TypeString, Description: "Prefix of changelog commands in PR descriptions and comments"},
	"skip_dependabot":     {Path: "skip_dependabot", Type: TypeBool, Description: "Ignore PRs authored by dependabot"},
	"default_behavior":    {Path: "default_behavior", Type: TypeEnum, AllowedValues: []string{"auto", "opt-in"}, Description: "Record every PR (auto) or only PRs ticking the opt-in checkbox"},
	"opt_in_checkbox":     {Path: "opt_in_checkbox", Type: TypeString, Description: "Checkbox label required in opt-in mode"},
	"preserve_edited":     {Path: "preserve_edited", Type: TypeBool, Description: "Keep entries that were written or edited by hand"},
	"skip_labels":         {Path: "skip_labels", Type: TypeList, Description: "Labels or glob patterns that skip a PR (env: comma-separated)"},
	"sections":            {Path: "sections", Type: TypeMap, Description: "Commit type to changelog section overrides"},
	"repository":          {Path: "repository", Type: TypeString, Description: "owner/name of the repository (default: $GITHUB_REPOSITORY)"},
	"github_token":        {Path: "github_token", Type: TypeString, Description: "GitHub API token (default: $GITHUB_TOKEN)", Secret: true},
	"github_api_url":      {Path: "github_api_url", Type: TypeString, Description: "GitHub Enterprise API URL"},
	"commit":              {Path: "commit", Type: TypeBool, Description: "Commit and push the changelog when it changes"},
	"commit_message":      {Path: "commit_message", Type: TypeString, Description: "Commit message template; fields: .Number .Title .Author .HeadRef"},
	"commit_author_name":  {Path: "commit_author_name", Type: TypeString, Description: "Commit author name"},
	"commit_author_email": {Path: "commit_author_email", Type: TypeString, Description: "Commit author email"},
	"remote":              {Path: "remote", Type: TypeString, Description: "Remote to push to (empty = commit only)"},
	"log_level":           {Path: "log_level", Type: TypeEnum, AllowedValues: []string{"debug", "info", "warn", "error"}, Description: "Logging level"},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns all known key schemas ordered by path.
func SortedKeys() []ConfigKeySchema {
	schemas := lo.Values(KnownKeys)
	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Path < schemas[j].Path
	})
	return schemas
}
