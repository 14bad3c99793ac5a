// Package config handles CLI configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied to any field the file leaves empty.
const (
	DefaultListenAddr = ":8501"
	DefaultProvider   = "openai"
	DefaultModel      = "dall-e-3"
)

// Config represents the CLI configuration.
// It never holds the API key; the key is entered per request.
type Config struct {
	ListenAddr string                    `yaml:"listen_addr"`
	Provider   string                    `yaml:"provider"`
	Model      string                    `yaml:"model"`
	Providers  map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds configuration for a specific provider.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultConfigPath returns ~/.mandala/config.yaml, or config.yaml in the
// working directory when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "config.yaml"
	}
	return filepath.Join(home, ".mandala", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns the default config without error.
// Unknown keys are rejected so a misplaced api_key is reported instead of
// silently kept on disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
}

// GetProvider returns the provider config for the given ID.
// Returns nil if the provider is not configured.
func (c *Config) GetProvider(id string) *ProviderConfig {
	if c.Providers == nil {
		return nil
	}
	if pc, ok := c.Providers[id]; ok {
		return &pc
	}
	return nil
}
