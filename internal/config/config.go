// autochangelog - Pull request changelog automation
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/autochangelog

// Package config provides hierarchical configuration management for autochangelog using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.github/autochangelog.yml) > user config (~/.config/autochangelog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/autochangelog/internal/conventional"
	"github.com/ariel-frischer/autochangelog/internal/resolve"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "AUTOCHANGELOG_"

// Configuration represents the autochangelog configuration
type Configuration struct {
	ChangelogPath  string `koanf:"changelog_path" validate:"required"`
	AutoCategorize bool   `koanf:"auto_categorize"`
	CommentTrigger string `koanf:"comment_trigger" validate:"required"`
	SkipDependabot bool   `koanf:"skip_dependabot"`
	// DefaultBehavior is "auto" (record unless told to skip) or "opt-in"
	// (record only when the PR ticks OptInCheckbox).
	DefaultBehavior string   `koanf:"default_behavior" validate:"oneof=auto opt-in"`
	OptInCheckbox   string   `koanf:"opt_in_checkbox"`
	PreserveEdited  bool     `koanf:"preserve_edited"`
	SkipLabels      []string `koanf:"skip_labels"`

	// Sections overrides the commit type to changelog section table,
	// e.g. {"chore": "Maintenance"}.
	Sections map[string]string `koanf:"sections"`

	// Repository is "owner/name". Falls back to the workflow event or GITHUB_REPOSITORY.
	Repository string `koanf:"repository"`
	// GitHubToken falls back to GITHUB_TOKEN when unset.
	GitHubToken  string `koanf:"github_token"`
	GitHubAPIURL string `koanf:"github_api_url" validate:"omitempty,url"`

	Commit            bool   `koanf:"commit"`
	CommitMessage     string `koanf:"commit_message"`
	CommitAuthorName  string `koanf:"commit_author_name"`
	CommitAuthorEmail string `koanf:"commit_author_email"`
	Remote            string `koanf:"remote"`

	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .github/autochangelog.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k, err := loadKoanf(opts)
	if err != nil {
		return nil, err
	}
	return finalizeConfig(k)
}

// loadKoanf merges all layers into a single koanf instance.
func loadKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	return k, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level YAML config. A custom path must
// exist; the default path is optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
// List keys take comma-separated values.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envTransform(key)
		if key == "skip_labels" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, applies fallbacks and validates.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.Repository == "" {
		cfg.Repository = os.Getenv("GITHUB_REPOSITORY")
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// SectionMap returns the built-in section table with configured overrides applied.
func (c *Configuration) SectionMap() conventional.SectionMap {
	return conventional.DefaultSections().Merge(c.Sections)
}

// Policy returns the resolver policy described by the configuration.
func (c *Configuration) Policy() resolve.Policy {
	return resolve.Policy{
		DefaultBehavior: resolve.Behavior(c.DefaultBehavior),
		SkipLabels:      c.SkipLabels,
		OptInCheckbox:   c.OptInCheckbox,
		PreserveEdited:  c.PreserveEdited,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: AUTOCHANGELOG_CHANGELOG_PATH -> changelog_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
