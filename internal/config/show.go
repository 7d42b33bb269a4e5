package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const maskedValue = "********"

// Effective returns the merged configuration values, with secrets masked.
func Effective(opts LoadOptions) (map[string]interface{}, error) {
	k, err := loadKoanf(opts)
	if err != nil {
		return nil, err
	}

	raw := k.Raw()
	for _, schema := range KnownKeys {
		if !schema.Secret {
			continue
		}
		if v, ok := raw[schema.Path].(string); ok && v != "" {
			raw[schema.Path] = maskedValue
		}
	}
	return raw, nil
}

// ShowYAML renders the merged configuration as YAML.
func ShowYAML(opts LoadOptions) ([]byte, error) {
	raw, err := Effective(opts)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}

// Get returns the effective value of a single known key.
func Get(opts LoadOptions, key string) (interface{}, error) {
	if _, err := GetKeySchema(key); err != nil {
		return nil, err
	}
	raw, err := Effective(opts)
	if err != nil {
		return nil, err
	}
	return raw[key], nil
}
