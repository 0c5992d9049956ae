package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/schema"
)

// Load reads and parses a uetest.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, uerrors.Configf("failed to read config file: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, uerrors.Configf("%s: %v", path, err)
	}
	return cfg, nil
}

// LoadOptional loads path if it exists and returns an empty Config otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return Load(path)
}

// Parse decodes YAML, checks it against the embedded config schema and
// returns the typed configuration.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc == nil {
		return &Config{}, nil
	}

	// The schema is JSON; yaml.v3 decodes mappings to map[string]any,
	// which encodes back to JSON unchanged.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := schema.ValidateConfig(asJSON); err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}
