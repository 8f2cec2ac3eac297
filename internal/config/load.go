package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/strvals"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "webstamp.yaml"

// Load merges the given values files in order, applies --set overrides on
// top, then defaults and validates the result. Later files win over
// earlier ones; sets win over every file.
func Load(paths []string, sets []string) (*Config, error) {
	cfg, err := Merge(paths, sets)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile loads, defaults and validates a single values file.
func LoadFile(path string) (*Config, error) {
	return Load([]string{path}, nil)
}

// Merge merges values files and --set overrides into a Config without
// applying defaults or validating. Tooling that inspects partial configs
// uses this directly.
func Merge(paths []string, sets []string) (*Config, error) {
	merged := map[string]interface{}{}

	for _, path := range paths {
		// #nosec G304
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file: %w", err)
		}

		vals := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &vals); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// The later file is the destination so its keys win.
		merged = chartutil.CoalesceTables(vals, merged)
	}

	for _, set := range sets {
		if err := strvals.ParseInto(set, merged); err != nil {
			return nil, fmt.Errorf("failed to parse --set %q: %w", set, err)
		}
	}

	raw, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal merged values: %w", err)
	}

	cfg, err := FromYAML(raw)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromYAML parses a Config from YAML bytes. Unknown fields are rejected
// so typos surface as errors instead of silently rendering defaults.
func FromYAML(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}

	return &cfg, nil
}

// ToYAML renders the configuration as YAML with two-space indentation.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize config yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// Save writes the configuration to a file.
func Save(cfg *Config, path string) error {
	data, err := cfg.ToYAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default path for the config file.
// It looks in the current working directory.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(cwd, DefaultConfigFilename)
}

// FindConfigFile searches for a config file starting in the current
// directory, then walking up the directory tree.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent

		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
}
